package learning

import (
	"gonum.org/v1/gonum/floats"
	"log"
	"sort"
)

// Block is every record of one query, normalised together.
type Block struct {
	Comment string
	Records []Record
}

// NewBlock collects the records of a query.
func NewBlock(records []Record) *Block {
	return &Block{Records: records}
}

// Empty reports whether the block has no mention rows.
func (b *Block) Empty() bool {
	for _, r := range b.Records {
		if r.Kind == MentionRecord {
			return false
		}
	}
	return true
}

// Normalise divides every group feature column by its maximum within the
// block. A column whose maximum is zero is set to zero.
func (b *Block) Normalise(logger *log.Logger) {
	var groups []int
	for i, r := range b.Records {
		if r.Kind == GroupRecord {
			groups = append(groups, i)
		}
	}
	if len(groups) == 0 {
		return
	}

	column := make([]float64, len(groups))
	for id := GroupFeatures; id < NumFeatures; id++ {
		for j, i := range groups {
			column[j] = b.Records[i].Get(id)
		}
		max := floats.Max(column)
		if max == 0 && logger != nil {
			logger.Printf("all values zero in column %d\n", id)
		}
		for j, i := range groups {
			v := 0.0
			if max != 0 {
				v = column[j] / max
			}
			b.Records[i].Features = setFeature(b.Records[i].Features, id, v)
		}
	}
}

func setFeature(ff Features, id int, score float64) Features {
	for i, f := range ff {
		if f.ID == id {
			ff[i] = f.Set(score)
			return ff
		}
	}
	return append(ff, NewFeature(id, score))
}

// Rows merges the group features into the rows of their mentions, keeping the
// record order. Every row carries the query id of its mention record.
func (b *Block) Rows() []LearntFeature {
	groups := make(map[int]Features)
	for _, r := range b.Records {
		if r.Kind == GroupRecord {
			groups[r.Group] = r.Features
		}
	}

	var rows []LearntFeature
	for _, r := range b.Records {
		if r.Kind != MentionRecord {
			continue
		}
		ff := make(Features, 0, len(r.Features)+len(groups[r.Group]))
		ff = append(ff, r.Features...)
		ff = append(ff, groups[r.Group]...)
		sort.Stable(ff)
		label := 0
		if r.Label {
			label = 1
		}
		rows = append(rows, LearntFeature{
			Features: ff,
			Label:    label,
			Query:    r.Query,
			Comment:  b.Comment,
		})
	}
	return rows
}
