package learning

import (
	"bufio"
	"fmt"
	"github.com/xtgo/set"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Feature is a single numbered value of a ranker row.
type Feature struct {
	ID    int
	Score float64
}

// Set sets the `Score` of the feature.
func (f Feature) Set(score float64) Feature {
	f.Score = score
	return f
}

const (
	nilFeature = iota

	// Mention Features (passed through unscaled).
	NoEntityFeature
	CellLineFeature
	CellTypeFeature
	DNAFeature
	ProteinFeature
	RNAFeature
	SimilarityFeature
	TaxonDistanceFeature
	MentionAmbiguityFeature
	SentenceTaxonFeature

	// Group Features (integer counts, scaled per query).
	IdentifierCountFeature
	SymbolCountFeature
	IdentifierSymbolCountFeature
	LinkoutCountFeature
	GlobalSymbolCountFeature
	ReferenceCountFeature
	TaxonCountFeature

	// NumFeatures is one more than the highest feature id.
	NumFeatures
)

// GroupFeatures is the lowest id of the group feature range.
const GroupFeatures = IdentifierCountFeature

// FeatureNames names every feature id.
var FeatureNames = map[int]string{
	NoEntityFeature:              "entity_none",
	CellLineFeature:              "entity_cell_line",
	CellTypeFeature:              "entity_cell_type",
	DNAFeature:                   "entity_dna",
	ProteinFeature:               "entity_protein",
	RNAFeature:                   "entity_rna",
	SimilarityFeature:            "similarity",
	TaxonDistanceFeature:         "taxon_distance",
	MentionAmbiguityFeature:      "mention_ambiguity",
	SentenceTaxonFeature:         "sentence_containment",
	IdentifierCountFeature:       "count_id",
	SymbolCountFeature:           "count_sym_local",
	IdentifierSymbolCountFeature: "count_id_sym",
	LinkoutCountFeature:          "count_links",
	GlobalSymbolCountFeature:     "count_sym_global",
	ReferenceCountFeature:        "count_refs",
	TaxonCountFeature:            "count_taxids",
}

// NewFeature creates a new feature with the specified ID and `Score`.
func NewFeature(id int, score float64) Feature {
	return Feature{id, score}
}

// Features is an ordered set of features.
type Features []Feature

func (ff Features) Len() int           { return len(ff) }
func (ff Features) Swap(i, j int)      { ff[i], ff[j] = ff[j], ff[i] }
func (ff Features) Less(i, j int) bool { return ff[i].ID < ff[j].ID }

// Uniq sorts the features by id and keeps the first feature of every id.
func (ff Features) Uniq() Features {
	sort.Stable(ff)
	return ff[:set.Uniq(ff)]
}

// Get returns the score of a feature, zero when it is absent.
func (ff Features) Get(id int) float64 {
	for _, f := range ff {
		if f.ID == id {
			return f.Score
		}
	}
	return 0
}

// String returns the string of a Feature family.
func (ff Features) String() string {
	s := make([]string, len(ff))
	for i, f := range ff {
		s[i] = fmt.Sprintf("%d:%.8f", f.ID, f.Score)
	}
	return strings.Join(s, " ")
}

// LearntFeature is one ranker row: a mention's label and features within a query.
type LearntFeature struct {
	Features
	Label   int
	Query   int
	Comment string
}

// WriteLibSVMRank writes a LIBSVM^rank compatible line to a writer.
func (lf LearntFeature) WriteLibSVMRank(writer io.Writer) (int, error) {
	ff := append(Features(nil), lf.Features...).Uniq()
	var b strings.Builder
	fmt.Fprintf(&b, "%d qid:%d", lf.Label, lf.Query)
	for _, f := range ff {
		fmt.Fprintf(&b, " %d:%.8f", f.ID, f.Score)
	}
	if len(lf.Comment) > 0 {
		b.WriteString(" # " + lf.Comment)
	}
	b.WriteString("\n")
	return io.WriteString(writer, b.String())
}

// LoadFeatures reads LIBSVM^rank lines.
func LoadFeatures(reader io.Reader) ([]LearntFeature, error) {
	var lfs []LearntFeature
	s := bufio.NewScanner(reader)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for s.Scan() {
		var (
			lf   LearntFeature
			rest = s.Text()
		)

		// {line} # [comment]
		if i := strings.Index(rest, "#"); i >= 0 {
			lf.Comment = strings.TrimSpace(rest[i+1:])
			rest = rest[:i]
		}

		// [label] qid:[query] {features}
		b := strings.Fields(rest)
		if len(b) == 0 {
			continue
		}
		if len(b) < 2 || !strings.HasPrefix(b[1], "qid:") {
			return nil, fmt.Errorf("line %q has no query id", s.Text())
		}
		var err error
		if lf.Label, err = strconv.Atoi(b[0]); err != nil {
			return nil, err
		}
		if lf.Query, err = strconv.Atoi(strings.TrimPrefix(b[1], "qid:")); err != nil {
			return nil, err
		}

		lf.Features = make(Features, len(b[2:]))
		for i, v := range b[2:] {
			f := strings.SplitN(v, ":", 2)
			if len(f) != 2 {
				return nil, fmt.Errorf("feature %q is not of the form id:value", v)
			}
			id, err := strconv.Atoi(f[0])
			if err != nil {
				return nil, err
			}
			score, err := strconv.ParseFloat(f[1], 64)
			if err != nil {
				return nil, err
			}
			lf.Features[i] = NewFeature(id, score)
		}
		lfs = append(lfs, lf)
	}
	return lfs, s.Err()
}
