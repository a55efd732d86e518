// Package pipeline joins the annotation streams of a corpus into ranker
// training data, one query per document.
package pipeline

import (
	"github.com/pkg/errors"
	"github.com/txtfnnl/generank/annotation"
	"github.com/txtfnnl/generank/eval"
	"github.com/txtfnnl/generank/index"
	"github.com/txtfnnl/generank/learning"
	"github.com/txtfnnl/generank/output"
	"github.com/txtfnnl/generank/stats"
	"gopkg.in/cheggaaa/pb.v1"
	"io"
	"io/ioutil"
	"log"
)

// DefaultSymbolCacheSize is the number of symbol resolutions remembered.
const DefaultSymbolCacheSize = 4096

// GeneRankPipeline contains everything needed to turn documents into queries.
type GeneRankPipeline struct {
	Corpus           stats.Corpus
	Logger           *log.Logger
	Progress         bool
	SentenceTag      string
	TaxonDistanceCap float64
	QueryStart       int
	Comments         bool
	SymbolCacheSize  int

	synthesizer *learning.Synthesizer
}

// Summary reports what a run did.
type Summary struct {
	// Documents is the number of gene-mention files seen.
	Documents int
	// Unlabelled is the number of documents skipped for having no gold labels.
	Unlabelled int
	// Queries is the number of documents processed.
	Queries int
	Rows    int

	SkippedGroups   int
	SkippedMentions int

	// Pre evaluates all candidates, Post only those that were emitted.
	Pre  *eval.Summary
	Post *eval.Summary
}

// Logger sets where diagnostics are written.
func Logger(logger *log.Logger) func(*GeneRankPipeline) {
	return func(p *GeneRankPipeline) {
		p.Logger = logger
	}
}

// Progress shows a progress bar over documents on the diagnostic stream.
func Progress(progress bool) func(*GeneRankPipeline) {
	return func(p *GeneRankPipeline) {
		p.Progress = progress
	}
}

// SentenceTag sets the span label of sentences.
func SentenceTag(tag string) func(*GeneRankPipeline) {
	return func(p *GeneRankPipeline) {
		p.SentenceTag = tag
	}
}

// TaxonDistanceCap sets the taxon distance of mentions overlapping their taxon.
func TaxonDistanceCap(distance float64) func(*GeneRankPipeline) {
	return func(p *GeneRankPipeline) {
		p.TaxonDistanceCap = distance
	}
}

// QueryStart sets the query id of the first document.
func QueryStart(qid int) func(*GeneRankPipeline) {
	return func(p *GeneRankPipeline) {
		p.QueryStart = qid
	}
}

// Comments appends the document id to every row.
func Comments(comments bool) func(*GeneRankPipeline) {
	return func(p *GeneRankPipeline) {
		p.Comments = comments
	}
}

// SymbolCacheSize sets how many symbol resolutions are remembered.
func SymbolCacheSize(size int) func(*GeneRankPipeline) {
	return func(p *GeneRankPipeline) {
		p.SymbolCacheSize = size
	}
}

// NewGeneRankPipeline creates a pipeline over a loaded corpus. Additional
// settings are provided via the optional functional arguments.
func NewGeneRankPipeline(corpus stats.Corpus, options ...func(*GeneRankPipeline)) (*GeneRankPipeline, error) {
	p := &GeneRankPipeline{
		Corpus:           corpus,
		Logger:           log.New(ioutil.Discard, "", 0),
		SentenceTag:      index.DefaultSentenceTag,
		TaxonDistanceCap: learning.DefaultTaxonDistanceCap,
		QueryStart:       1,
		SymbolCacheSize:  DefaultSymbolCacheSize,
	}
	for _, option := range options {
		option(p)
	}

	resolver, err := stats.NewResolver(corpus.Counters, p.SymbolCacheSize)
	if err != nil {
		return nil, err
	}
	p.synthesizer = learning.NewSynthesizer(corpus, resolver, p.Logger)
	p.synthesizer.TaxonDistanceCap = p.TaxonDistanceCap
	return p, nil
}

// Load reads and indexes the annotations of a document. Missing taxon or
// entity files are treated as empty.
func (p *GeneRankPipeline) Load(doc Document) (*index.Document, error) {
	mentions, err := annotation.ReadGeneMentions(doc.Genes)
	if err != nil {
		return nil, errors.Wrapf(err, "document %s", doc.ID)
	}
	taxa, err := annotation.ReadTaxa(doc.Taxa)
	if missing(err) {
		p.Logger.Printf("no taxon annotations for %s\n", doc.ID)
	} else if err != nil {
		return nil, errors.Wrapf(err, "document %s", doc.ID)
	}
	spans, err := annotation.ReadSpans(doc.Entities)
	if missing(err) {
		p.Logger.Printf("no entity annotations for %s\n", doc.ID)
	} else if err != nil {
		return nil, errors.Wrapf(err, "document %s", doc.ID)
	}
	return index.NewDocument(doc.ID, mentions, taxa, spans, index.Options{SentenceTag: p.SentenceTag}), nil
}

// Process synthesises and normalises the query block of an indexed document.
func (p *GeneRankPipeline) Process(query int, d *index.Document) (*learning.Block, []learning.Skip) {
	records, skipped := p.synthesizer.Synthesize(query, d)
	block := learning.NewBlock(records)
	if p.Comments {
		block.Comment = d.ID
	}
	block.Normalise(p.Logger)
	return block, skipped
}

// Execute processes every labelled document in the directories and writes
// one query block per document to w. Only malformed input or I/O failures
// stop a run.
func (p *GeneRankPipeline) Execute(dirs Directories, w io.Writer) (Summary, error) {
	s := Summary{Pre: eval.NewSummary(), Post: eval.NewSummary()}

	docs, err := dirs.Documents()
	if err != nil {
		return s, err
	}

	var bar *pb.ProgressBar
	if p.Progress {
		bar = pb.New(len(docs))
		bar.Output = p.Logger.Writer()
		bar.Start()
		defer bar.Finish()
	}

	formatter := output.NewRankFormatter(w)
	query := p.QueryStart
	for _, doc := range docs {
		if bar != nil {
			bar.Increment()
		}
		s.Documents++
		if !p.Corpus.Gold.Has(doc.ID) {
			s.Unlabelled++
			continue
		}
		p.Logger.Println("processing", doc.ID)

		d, err := p.Load(doc)
		if err != nil {
			return s, err
		}
		block, skipped := p.Process(query, d)
		query++
		s.Queries++
		for _, sk := range skipped {
			if sk.Mention != nil {
				s.SkippedMentions++
			} else {
				s.SkippedGroups++
			}
		}

		qrels := p.Corpus.Gold.Qrels[doc.ID]
		s.Pre.Add(candidates(d), qrels)
		s.Post.Add(emitted(block), qrels)

		n, err := formatter.Format(block.Rows())
		s.Rows += n
		if err != nil {
			return s, errors.Wrapf(err, "writing %s", doc.ID)
		}
	}

	p.Logger.Printf("processed %d of %d documents, %d rows, skipped %d groups and %d mentions\n",
		s.Queries, s.Documents, s.Rows, s.SkippedGroups, s.SkippedMentions)
	s.Pre.Log(p.Logger, "pre")
	s.Post.Log(p.Logger, "post")
	return s, nil
}

func candidates(d *index.Document) eval.Candidates {
	var ids []string
	for _, g := range d.Groups {
		for _, m := range g.Mentions {
			ids = append(ids, m.Entrez)
		}
	}
	return eval.NewCandidates(ids...)
}

func emitted(b *learning.Block) eval.Candidates {
	var ids []string
	for _, r := range b.Records {
		if r.Kind == learning.MentionRecord {
			ids = append(ids, r.Entrez)
		}
	}
	return eval.NewCandidates(ids...)
}
