// Package stats provides the corpus-wide lookup tables shared by every
// document: gold labels, linkout counts, and symbol statistics.
package stats

import (
	"log"
)

// Corpus is the read-only context every document is processed against.
type Corpus struct {
	Gold     Gold
	Linkouts Linkouts
	Counters Counters
}

// CorpusFiles locates the corpus tables on disk.
type CorpusFiles struct {
	Gold     string
	Counters string
	Linkouts string
	// Qrels reads the gold file in TREC qrels format.
	Qrels bool
}

// LoadCorpus reads the corpus tables, going through the cache when one is given.
func LoadCorpus(files CorpusFiles, cache *Cache, logger *log.Logger) (Corpus, error) {
	var (
		c   Corpus
		err error
	)
	if files.Qrels {
		c.Gold, err = LoadQrels(files.Gold)
	} else {
		c.Gold, err = LoadGold(files.Gold)
	}
	if err != nil {
		return c, err
	}
	logger.Printf("parsed %d gold items\n", c.Gold.Len())

	if cache != nil {
		c.Linkouts, err = cache.Linkouts(files.Linkouts)
	} else {
		c.Linkouts, err = LoadLinkouts(files.Linkouts)
	}
	if err != nil {
		return c, err
	}
	logger.Printf("parsed %d linkout items\n", len(c.Linkouts))

	if cache != nil {
		c.Counters, err = cache.Counters(files.Counters)
	} else {
		c.Counters, err = LoadCounters(files.Counters)
	}
	if err != nil {
		return c, err
	}
	logger.Printf("parsed %d refcount items\n", len(c.Counters.References))
	return c, nil
}
