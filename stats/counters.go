package stats

import (
	"github.com/pkg/errors"
	"github.com/txtfnnl/generank/annotation"
)

var (
	// ErrUnknownIdentifier is returned when an identifier has no reference counts.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrUnknownReference is returned when an identifier has no count for a symbol.
	ErrUnknownReference = errors.New("unknown symbol for identifier")
)

// Linkouts maps an identifier to its number of external references.
type Linkouts map[string]int

// Count is the linkout count of an identifier, zero when it is not known.
func (l Linkouts) Count(id string) int {
	return l[id]
}

// NewLinkouts indexes linkout records. Later records override earlier ones.
func NewLinkouts(links []annotation.Linkout) Linkouts {
	l := make(Linkouts, len(links))
	for _, link := range links {
		l[link.ID] = link.Count
	}
	return l
}

// LoadLinkouts reads a linkout count file.
func LoadLinkouts(path string) (Linkouts, error) {
	links, err := annotation.ReadLinkouts(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading linkouts")
	}
	return NewLinkouts(links), nil
}

// Counters are the corpus-wide symbol statistics.
type Counters struct {
	// Symbols is the global document frequency of each symbol.
	Symbols map[string]int
	// References is the reference count of each symbol per identifier.
	References map[string]map[string]int
}

// NewCounters indexes counter records. The first global count seen for a
// symbol is kept.
func NewCounters(counters []annotation.Counter) Counters {
	c := Counters{
		Symbols:    make(map[string]int),
		References: make(map[string]map[string]int),
	}
	for _, counter := range counters {
		if _, ok := c.Symbols[counter.Symbol]; !ok {
			c.Symbols[counter.Symbol] = counter.Global
		}
		if _, ok := c.References[counter.ID]; !ok {
			c.References[counter.ID] = make(map[string]int)
		}
		c.References[counter.ID][counter.Symbol] = counter.References
	}
	return c
}

// LoadCounters reads a reference/global counter file.
func LoadCounters(path string) (Counters, error) {
	counters, err := annotation.ReadCounters(path)
	if err != nil {
		return Counters{}, errors.Wrapf(err, "loading counters")
	}
	return NewCounters(counters), nil
}
