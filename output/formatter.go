// Package output writes query blocks in the formats consumed by rankers.
package output

import (
	"bufio"
	"github.com/txtfnnl/generank/learning"
	"io"
)

// Formatter writes the rows of one query block.
type Formatter interface {
	Format(rows []learning.LearntFeature) (int, error)
}

// RankFormatter writes LIBSVM^rank lines. Each block is flushed as a unit.
type RankFormatter struct {
	w *bufio.Writer
}

// NewRankFormatter creates a formatter writing to w.
func NewRankFormatter(w io.Writer) *RankFormatter {
	return &RankFormatter{w: bufio.NewWriter(w)}
}

// Format writes the rows and flushes them, returning the number of rows written.
func (f *RankFormatter) Format(rows []learning.LearntFeature) (int, error) {
	for i, row := range rows {
		if _, err := row.WriteLibSVMRank(f.w); err != nil {
			return i, err
		}
	}
	return len(rows), f.w.Flush()
}
