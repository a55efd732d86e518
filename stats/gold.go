package stats

import (
	"github.com/hscells/trecresults"
	"github.com/pkg/errors"
	"github.com/txtfnnl/generank/annotation"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Gold holds the correct identifiers of every document as relevance
// assessments, the document being the topic and the identifier the document
// id of each qrel.
type Gold struct {
	trecresults.QrelsFile
}

// NewGold builds gold labels from document, identifier pairs.
func NewGold(items []annotation.GoldItem) Gold {
	g := Gold{trecresults.QrelsFile{Qrels: make(map[string]trecresults.Qrels)}}
	for _, item := range items {
		q, ok := g.Qrels[item.Document]
		if !ok {
			q = make(trecresults.Qrels)
			g.Qrels[item.Document] = q
		}
		q[item.Entrez] = &trecresults.Qrel{
			Topic:     item.Document,
			Iteration: "0",
			DocId:     item.Entrez,
			Score:     1,
		}
	}
	return g
}

// LoadGold reads a tab-separated document, identifier file.
func LoadGold(path string) (Gold, error) {
	items, err := annotation.ReadGold(path)
	if err != nil {
		return Gold{}, errors.Wrapf(err, "loading gold")
	}
	return NewGold(items), nil
}

// LoadQrels reads gold labels in TREC qrels format.
func LoadQrels(path string) (Gold, error) {
	f, err := os.Open(path)
	if err != nil {
		return Gold{}, errors.Wrapf(err, "loading qrels")
	}
	defer f.Close()
	qrels, err := trecresults.QrelsFromReader(f)
	if err != nil {
		return Gold{}, errors.Wrapf(err, "loading qrels %s", path)
	}
	return canonical(qrels, path)
}

// canonical re-keys the qrels by the integer spelling of every identifier.
func canonical(qrels trecresults.QrelsFile, path string) (Gold, error) {
	g := Gold{trecresults.QrelsFile{Qrels: make(map[string]trecresults.Qrels, len(qrels.Qrels))}}
	for topic, q := range qrels.Qrels {
		c := make(trecresults.Qrels, len(q))
		for _, qrel := range q {
			v, err := strconv.Atoi(strings.TrimSpace(qrel.DocId))
			if err != nil {
				return Gold{}, errors.Errorf("loading qrels %s: entrez id %q of %s is not an integer", path, qrel.DocId, topic)
			}
			qrel.DocId = strconv.Itoa(v)
			c[qrel.DocId] = qrel
		}
		g.Qrels[topic] = c
	}
	return g, nil
}

// Has reports whether the document has gold labels.
func (g Gold) Has(document string) bool {
	_, ok := g.Qrels[document]
	return ok
}

// Contains reports whether id is a correct identifier for the document.
func (g Gold) Contains(document, id string) bool {
	q, ok := g.Qrels[document][id]
	return ok && q.Score > 0
}

// Len is the number of documents with gold labels.
func (g Gold) Len() int {
	return len(g.Qrels)
}

// Documents lists the labelled documents in sorted order.
func (g Gold) Documents() []string {
	docs := make([]string, 0, len(g.Qrels))
	for doc := range g.Qrels {
		docs = append(docs, doc)
	}
	sort.Strings(docs)
	return docs
}
