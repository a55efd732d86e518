// Package annotation parses the line-oriented annotation dumps written by the
// txtfnnl annotators into typed records.
package annotation

import (
	"fmt"
	"github.com/xtgo/set"
	"sort"
	"strconv"
	"strings"
)

// Offset is a half-open character interval [Start, End) into a document.
type Offset struct {
	Start int
	End   int
}

// ParseOffset parses an offset encoded as "start:end".
func ParseOffset(s string) (Offset, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Offset{}, fmt.Errorf("offset %q is not of the form start:end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Offset{}, fmt.Errorf("offset %q has a non-integer start", s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Offset{}, fmt.Errorf("offset %q has a non-integer end", s)
	}
	if start < 0 || end < start {
		return Offset{}, fmt.Errorf("offset %q is not a valid interval", s)
	}
	return Offset{Start: start, End: end}, nil
}

// Len is the number of characters the offset covers.
func (o Offset) Len() int {
	return o.End - o.Start
}

// Contains reports whether o fully contains other.
func (o Offset) Contains(other Offset) bool {
	return o.Start <= other.Start && other.End <= o.End
}

// Overlaps reports whether the two intervals overlap or touch.
func (o Offset) Overlaps(other Offset) bool {
	return o.Start <= other.End && other.Start <= o.End
}

// Gap is the number of characters between two intervals. Intervals that
// overlap or are adjacent have a gap of zero.
func (o Offset) Gap(other Offset) int {
	if o.Overlaps(other) {
		return 0
	}
	a := o.Start - other.End
	if a < 0 {
		a = -a
	}
	b := other.Start - o.End
	if b < 0 {
		b = -b
	}
	if a < b {
		return a
	}
	return b
}

func (o Offset) String() string {
	return fmt.Sprintf("%d:%d", o.Start, o.End)
}

// Offsets is a list of intervals ordered by start, then by length.
type Offsets []Offset

func (oo Offsets) Len() int      { return len(oo) }
func (oo Offsets) Swap(i, j int) { oo[i], oo[j] = oo[j], oo[i] }
func (oo Offsets) Less(i, j int) bool {
	if oo[i].Start != oo[j].Start {
		return oo[i].Start < oo[j].Start
	}
	return oo[i].End < oo[j].End
}

// Uniq sorts the offsets and removes duplicates.
func (oo Offsets) Uniq() Offsets {
	sort.Sort(oo)
	return oo[:set.Uniq(oo)]
}
