// Package eval measures how well the candidate identifiers of a document
// cover its gold identifiers.
package eval

import (
	"fmt"
	"github.com/hscells/trecresults"
	"gonum.org/v1/gonum/stat"
	"log"
	"sort"
)

// Candidates are the distinct identifiers proposed for a document.
type Candidates []string

// NewCandidates de-duplicates and sorts identifiers.
func NewCandidates(ids ...string) Candidates {
	seen := make(map[string]struct{}, len(ids))
	c := make(Candidates, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		c = append(c, id)
	}
	sort.Strings(c)
	return c
}

// Evaluator is an interface for evaluating the candidates of a document.
type Evaluator interface {
	Score(candidates Candidates, qrels trecresults.Qrels) float64
	Name() string
}

// Evaluate scores candidates using supplied evaluation measurements.
func Evaluate(evaluators []Evaluator, candidates Candidates, qrels trecresults.Qrels) map[string]float64 {
	scores := make(map[string]float64, len(evaluators))
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(candidates, qrels)
	}
	return scores
}

// Summary accumulates the scores of every document of a run.
type Summary struct {
	Evaluators []Evaluator
	scores     map[string][]float64
	counts     map[string]float64
}

// NewSummary creates a summary over the evaluators. The raw counts NumRel,
// NumRet, and NumRelRet are always recorded.
func NewSummary(evaluators ...Evaluator) *Summary {
	if len(evaluators) == 0 {
		evaluators = []Evaluator{PrecisionEvaluator, RecallEvaluator, F1Measure}
	}
	return &Summary{
		Evaluators: evaluators,
		scores:     make(map[string][]float64),
		counts:     make(map[string]float64),
	}
}

// Add evaluates the candidates of one document.
func (s *Summary) Add(candidates Candidates, qrels trecresults.Qrels) {
	for name, score := range Evaluate(s.Evaluators, candidates, qrels) {
		s.scores[name] = append(s.scores[name], score)
	}
	for _, e := range []Evaluator{NumRel, NumRet, NumRelRet} {
		s.counts[e.Name()] += e.Score(candidates, qrels)
	}
}

// Documents is the number of documents evaluated.
func (s *Summary) Documents() int {
	if len(s.Evaluators) == 0 {
		return 0
	}
	return len(s.scores[s.Evaluators[0].Name()])
}

// Mean is the macro average of an evaluator over all documents.
func (s *Summary) Mean(e Evaluator) float64 {
	scores := s.scores[e.Name()]
	if len(scores) == 0 {
		return 0
	}
	return stat.Mean(scores, nil)
}

// Count is the total of a raw count (NumRel, NumRet, or NumRelRet).
func (s *Summary) Count(e Evaluator) float64 {
	return s.counts[e.Name()]
}

// String formats the averages, e.g. "Precision=0.500 Recall=1.000".
func (s *Summary) String() string {
	var str string
	for i, e := range s.Evaluators {
		if i > 0 {
			str += " "
		}
		str += fmt.Sprintf("%s=%.3f", e.Name(), s.Mean(e))
	}
	return fmt.Sprintf("%s (rel=%.0f, ret=%.0f, relret=%.0f)", str, s.Count(NumRel), s.Count(NumRet), s.Count(NumRelRet))
}

// Log writes the summary of a run.
func (s *Summary) Log(logger *log.Logger, kind string) {
	logger.Printf("%s candidates over %d documents: %s\n", kind, s.Documents(), s)
}
