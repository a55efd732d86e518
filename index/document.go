// Package index organises the annotations of a single document for feature
// synthesis.
package index

import (
	"github.com/txtfnnl/generank/annotation"
	"sort"
)

// DefaultSentenceTag is the span label marking sentence boundaries.
const DefaultSentenceTag = "sentence"

// Key identifies a group of mentions.
type Key struct {
	ID     string
	Symbol string
}

// Group is every mention of one symbol resolved to one identifier.
type Group struct {
	Key
	Mentions []annotation.GeneMention
}

// EntitySpan is a typed named-entity span.
type EntitySpan struct {
	Offset annotation.Offset
	Type   annotation.EntityType
}

// Document holds the indexed annotations of one document.
type Document struct {
	ID string
	// Groups are in the order their first mention was encountered.
	Groups []*Group
	// Taxa holds the distinct offsets each taxon was mentioned at.
	Taxa map[int]annotation.Offsets
	// Entities are sorted by start, then by length.
	Entities []EntitySpan
	// Sentences are sorted by start, then by length.
	Sentences annotation.Offsets
	// SymbolOffsets holds the distinct mention offsets of each symbol across
	// all identifiers.
	SymbolOffsets map[string]annotation.Offsets
	// OffsetClaims is the number of groups with a mention at each offset.
	OffsetClaims map[annotation.Offset]int
	// IdentifierMentions is the number of mentions of each identifier.
	IdentifierMentions map[string]int
}

// Options configure how a document is indexed.
type Options struct {
	SentenceTag string
}

// NewDocument indexes the annotations of a document. Spans labelled with the
// sentence tag are sentences, every other span is an entity.
func NewDocument(id string, mentions []annotation.GeneMention, taxa []annotation.TaxonHit, spans []annotation.Span, options Options) *Document {
	if len(options.SentenceTag) == 0 {
		options.SentenceTag = DefaultSentenceTag
	}
	d := &Document{
		ID:                 id,
		Taxa:               make(map[int]annotation.Offsets),
		SymbolOffsets:      make(map[string]annotation.Offsets),
		OffsetClaims:       make(map[annotation.Offset]int),
		IdentifierMentions: make(map[string]int),
	}

	groups := make(map[Key]*Group)
	for _, m := range mentions {
		k := Key{ID: m.ID, Symbol: m.Symbol}
		g, ok := groups[k]
		if !ok {
			g = &Group{Key: k}
			groups[k] = g
			d.Groups = append(d.Groups, g)
		}
		g.Mentions = append(g.Mentions, m)
		d.IdentifierMentions[m.ID]++
		d.SymbolOffsets[m.Symbol] = append(d.SymbolOffsets[m.Symbol], m.Offset)
	}
	for symbol, offsets := range d.SymbolOffsets {
		d.SymbolOffsets[symbol] = offsets.Uniq()
	}
	for _, g := range d.Groups {
		seen := make(map[annotation.Offset]struct{})
		for _, m := range g.Mentions {
			if _, ok := seen[m.Offset]; ok {
				continue
			}
			seen[m.Offset] = struct{}{}
			d.OffsetClaims[m.Offset]++
		}
	}

	for _, t := range taxa {
		d.Taxa[t.Taxon] = append(d.Taxa[t.Taxon], t.Offset)
	}
	for taxon, offsets := range d.Taxa {
		d.Taxa[taxon] = offsets.Uniq()
	}

	for _, s := range spans {
		if s.Label == options.SentenceTag {
			d.Sentences = append(d.Sentences, s.Offset)
			continue
		}
		d.Entities = append(d.Entities, EntitySpan{Offset: s.Offset, Type: annotation.ParseEntityType(s.Label)})
	}
	sort.Stable(d.Sentences)
	sort.SliceStable(d.Entities, func(i, j int) bool {
		a, b := d.Entities[i].Offset, d.Entities[j].Offset
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Len() < b.Len()
	})
	return d
}

// Entity returns the first entity span containing the offset.
func (d *Document) Entity(o annotation.Offset) (EntitySpan, bool) {
	for _, e := range d.Entities {
		if e.Offset.Contains(o) {
			return e, true
		}
	}
	return EntitySpan{}, false
}

// SentenceWithTaxon reports whether a sentence contains the offset together
// with a mention of the taxon.
func (d *Document) SentenceWithTaxon(o annotation.Offset, taxon int) bool {
	for _, s := range d.Sentences {
		if !s.Contains(o) {
			continue
		}
		for _, t := range d.Taxa[taxon] {
			if s.Contains(t) {
				return true
			}
		}
	}
	return false
}
