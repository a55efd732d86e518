package main

import (
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/txtfnnl/generank/annotation"
	"github.com/txtfnnl/generank/pipeline"
	"github.com/txtfnnl/generank/stats"
	"io"
	"log"
	"os"
)

var (
	name    = "generank"
	version = "19.Oct.2026"
)

type args struct {
	Config      string   `help:"Path to a TOML configuration file" arg:"-c"`
	Qrels       bool     `help:"Read the gold file in TREC qrels format"`
	Cache       string   `help:"Directory to cache parsed corpus tables in"`
	Progress    bool     `help:"Show a progress bar over documents" arg:"-p"`
	Comments    bool     `help:"Append the document id to every row"`
	SentenceTag string   `help:"Label of sentence spans in the entity files"`
	QidStart    *int     `help:"Query id of the first document"`
	TaxonCap    *float64 `help:"Taxon distance of mentions overlapping their taxon"`
	GeneDir     string   `help:"Directory of gene-mention files" arg:"required,positional"`
	TaxonDir    string   `help:"Directory of taxon files" arg:"required,positional"`
	EntityDir   string   `help:"Directory of entity and sentence files" arg:"required,positional"`
	GoldFile    string   `help:"Gold (document, identifier) pairs" arg:"required,positional"`
	CounterFile string   `help:"Global symbol and reference counts" arg:"required,positional"`
	LinkoutFile string   `help:"Linkout counts per identifier" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# %s
builds learning-to-rank data for gene normalisation from annotated documents`, name, version)
}

// config holds the settings of a TOML file. Nil fields were not set.
type config struct {
	SentenceTag      string   `toml:"sentence_tag"`
	TaxonDistanceCap *float64 `toml:"taxon_distance_cap"`
	SymbolCacheSize  int      `toml:"symbol_cache_size"`
	CacheDir         string   `toml:"cache_dir"`
	Comments         bool     `toml:"comments"`
	QidStart         *int     `toml:"qid_start"`
}

// merge overrides the configuration with every flag that was set.
func (c config) merge(a args) config {
	if len(a.SentenceTag) > 0 {
		c.SentenceTag = a.SentenceTag
	}
	if a.TaxonCap != nil {
		c.TaxonDistanceCap = a.TaxonCap
	}
	if len(a.Cache) > 0 {
		c.CacheDir = a.Cache
	}
	if a.Comments {
		c.Comments = true
	}
	if a.QidStart != nil {
		c.QidStart = a.QidStart
	}
	return c
}

func (c config) options(logger *log.Logger, progress bool) []func(*pipeline.GeneRankPipeline) {
	options := []func(*pipeline.GeneRankPipeline){
		pipeline.Logger(logger),
		pipeline.Progress(progress),
		pipeline.Comments(c.Comments),
	}
	if len(c.SentenceTag) > 0 {
		options = append(options, pipeline.SentenceTag(c.SentenceTag))
	}
	if c.TaxonDistanceCap != nil {
		options = append(options, pipeline.TaxonDistanceCap(*c.TaxonDistanceCap))
	}
	if c.SymbolCacheSize > 0 {
		options = append(options, pipeline.SymbolCacheSize(c.SymbolCacheSize))
	}
	if c.QidStart != nil {
		options = append(options, pipeline.QueryStart(*c.QidStart))
	}
	return options
}

func fatal(logger *log.Logger, err error) {
	if merr, ok := errors.Cause(err).(annotation.MalformedRecordError); ok {
		logger.Fatalln("malformed input:", merr)
	}
	logger.Fatalln(err)
}

// run writes the dataset of every labelled document to w. Blocks reach w as
// they are formatted.
func run(args args, logger *log.Logger, w io.Writer) error {
	var c config
	if len(args.Config) > 0 {
		if _, err := toml.DecodeFile(args.Config, &c); err != nil {
			return errors.Wrapf(err, "reading %s", args.Config)
		}
	}
	c = c.merge(args)

	var cache *stats.Cache
	if len(c.CacheDir) > 0 {
		cache = stats.NewCache(c.CacheDir)
	}

	corpus, err := stats.LoadCorpus(stats.CorpusFiles{
		Gold:     args.GoldFile,
		Counters: args.CounterFile,
		Linkouts: args.LinkoutFile,
		Qrels:    args.Qrels,
	}, cache, logger)
	if err != nil {
		return err
	}

	p, err := pipeline.NewGeneRankPipeline(corpus, c.options(logger, args.Progress)...)
	if err != nil {
		return err
	}

	_, err = p.Execute(pipeline.Directories{
		Genes:    args.GeneDir,
		Taxa:     args.TaxonDir,
		Entities: args.EntityDir,
	}, w)
	return err
}

func main() {
	var args args
	arg.MustParse(&args)

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(args, logger, os.Stdout); err != nil {
		fatal(logger, err)
	}
}
