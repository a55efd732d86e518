package learning

import (
	"fmt"
	"github.com/go-errors/errors"
	"github.com/txtfnnl/generank/annotation"
	"github.com/txtfnnl/generank/index"
	"github.com/txtfnnl/generank/stats"
	"io/ioutil"
	"log"
	"math"
)

// RecordKind discriminates the two shapes of feature records.
type RecordKind int

const (
	// MentionRecord carries the contextual features of one mention.
	MentionRecord RecordKind = iota + 1
	// GroupRecord carries the corpus counts of one (identifier, symbol) group.
	GroupRecord
)

func (k RecordKind) String() string {
	switch k {
	case MentionRecord:
		return "mention"
	case GroupRecord:
		return "group"
	}
	return "unknown"
}

// Record is the output of synthesis. Mention and group records of the same
// group share the Group number.
type Record struct {
	Kind  RecordKind
	Query int
	Group int
	// Label is set on mention records whose gold identifier is correct.
	Label bool
	// Entrez is the gold identifier of the mention.
	Entrez string
	Features
}

var (
	// ErrUnknownSymbol means a symbol is missing from the global symbol counts,
	// even after transliteration.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrUnknownReference means there is no reference count for a group.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrUnknownTaxon means the taxon of a group or mention was not annotated
	// in the document.
	ErrUnknownTaxon = errors.New("unknown taxon")
)

// Skip records a group or mention that contributes no rows.
type Skip struct {
	Document string
	index.Key
	// Mention is set when a single mention was skipped.
	Mention *annotation.Offset
	Err     *errors.Error
}

func (s Skip) Error() string {
	return s.Err.Error()
}

// DefaultTaxonDistanceCap is the taxon distance of a mention that overlaps
// or touches a mention of its taxon.
const DefaultTaxonDistanceCap = 1.0

// Synthesizer computes feature records for the documents of a corpus.
type Synthesizer struct {
	Corpus           stats.Corpus
	Resolver         *stats.Resolver
	Logger           *log.Logger
	TaxonDistanceCap float64
}

// NewSynthesizer creates a synthesizer that logs to logger. A nil logger
// discards diagnostics.
func NewSynthesizer(corpus stats.Corpus, resolver *stats.Resolver, logger *log.Logger) *Synthesizer {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Synthesizer{
		Corpus:           corpus,
		Resolver:         resolver,
		Logger:           logger,
		TaxonDistanceCap: DefaultTaxonDistanceCap,
	}
}

func (s *Synthesizer) skip(d *index.Document, k index.Key, mention *annotation.Offset, reason *errors.Error, format string, a ...interface{}) Skip {
	sk := Skip{
		Document: d.ID,
		Key:      k,
		Mention:  mention,
		Err:      errors.WrapPrefix(reason, fmt.Sprintf(format, a...), 0),
	}
	s.Logger.Println(sk.Error())
	return sk
}

// TaxonDistance is the reciprocal of the smallest gap between the offset and
// any of the taxon offsets. A gap of zero yields the cap.
func (s *Synthesizer) TaxonDistance(o annotation.Offset, taxa annotation.Offsets) float64 {
	gap := math.MaxInt32
	for _, t := range taxa {
		if g := o.Gap(t); g < gap {
			gap = g
		}
	}
	if gap == 0 {
		return s.TaxonDistanceCap
	}
	return 1.0 / float64(gap)
}

func entityFeatures(e index.EntitySpan, ok bool) Features {
	ff := Features{
		NewFeature(NoEntityFeature, 0),
		NewFeature(CellLineFeature, 0),
		NewFeature(CellTypeFeature, 0),
		NewFeature(DNAFeature, 0),
		NewFeature(ProteinFeature, 0),
		NewFeature(RNAFeature, 0),
	}
	if !ok {
		ff[0].Score = 1
		return ff
	}
	// An untyped span sets no indicator.
	switch e.Type {
	case annotation.CellLine:
		ff[1].Score = 1
	case annotation.CellType:
		ff[2].Score = 1
	case annotation.DNA:
		ff[3].Score = 1
	case annotation.Protein:
		ff[4].Score = 1
	case annotation.RNA:
		ff[5].Score = 1
	}
	return ff
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// groupFeatures computes the corpus counts of a group, or the reason the
// group cannot be used.
func (s *Synthesizer) groupFeatures(d *index.Document, g *index.Group) (Features, *Skip) {
	k := g.Key
	global, name, ok := s.Resolver.Global(k.Symbol)
	if !ok {
		sk := s.skip(d, k, nil, ErrUnknownSymbol, "unknown name %q in mention %q", name, k.ID)
		return nil, &sk
	}
	refs, err := s.Resolver.References(k.ID, k.Symbol)
	if err != nil {
		var sk Skip
		if err == stats.ErrUnknownIdentifier {
			sk = s.skip(d, k, nil, ErrUnknownReference, "unknown gid %q with name %q", k.ID, name)
		} else {
			sk = s.skip(d, k, nil, ErrUnknownReference, "unknown name %q for gid %q", name, k.ID)
		}
		return nil, &sk
	}
	taxon := g.Mentions[0].Taxon
	taxa, ok := d.Taxa[taxon]
	if !ok {
		sk := s.skip(d, k, nil, ErrUnknownTaxon, "unknown taxon \"%d\" in mention %q", taxon, k.ID)
		return nil, &sk
	}
	return Features{
		NewFeature(IdentifierCountFeature, float64(d.IdentifierMentions[k.ID])),
		NewFeature(SymbolCountFeature, float64(len(d.SymbolOffsets[k.Symbol]))),
		NewFeature(IdentifierSymbolCountFeature, float64(len(g.Mentions))),
		NewFeature(LinkoutCountFeature, float64(s.Corpus.Linkouts.Count(k.ID))),
		NewFeature(GlobalSymbolCountFeature, float64(global)),
		NewFeature(ReferenceCountFeature, float64(refs)),
		NewFeature(TaxonCountFeature, float64(len(taxa))),
	}, nil
}

// Synthesize computes the records of a document under the query id. Every
// usable group yields its mention records followed by one group record.
// Groups and mentions whose lookups fail are skipped and reported.
func (s *Synthesizer) Synthesize(query int, d *index.Document) ([]Record, []Skip) {
	var (
		records []Record
		skipped []Skip
	)
	for n, g := range d.Groups {
		gf, sk := s.groupFeatures(d, g)
		if sk != nil {
			skipped = append(skipped, *sk)
			continue
		}

		var mentions []Record
		for i := range g.Mentions {
			m := g.Mentions[i]
			taxa, ok := d.Taxa[m.Taxon]
			if !ok {
				skipped = append(skipped, s.skip(d, g.Key, &g.Mentions[i].Offset, ErrUnknownTaxon, "unknown taxon \"%d\" in mention %q at %s", m.Taxon, g.ID, m.Offset))
				continue
			}
			e, found := d.Entity(m.Offset)
			ff := entityFeatures(e, found)
			ff = append(ff,
				NewFeature(SimilarityFeature, m.Similarity),
				NewFeature(TaxonDistanceFeature, s.TaxonDistance(m.Offset, taxa)),
				NewFeature(MentionAmbiguityFeature, 1.0/float64(d.OffsetClaims[m.Offset])),
				NewFeature(SentenceTaxonFeature, boolScore(d.SentenceWithTaxon(m.Offset, m.Taxon))),
			)
			mentions = append(mentions, Record{
				Kind:     MentionRecord,
				Query:    query,
				Group:    n,
				Label:    s.Corpus.Gold.Contains(d.ID, m.Entrez),
				Entrez:   m.Entrez,
				Features: ff,
			})
		}
		if len(mentions) == 0 {
			continue
		}
		records = append(records, mentions...)
		records = append(records, Record{
			Kind:     GroupRecord,
			Query:    query,
			Group:    n,
			Features: gf,
		})
	}
	return records, skipped
}
