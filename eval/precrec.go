package eval

import (
	"fmt"
	"github.com/hscells/trecresults"
	"math"
)

type recallEvaluator struct{}
type precisionEvaluator struct{}
type numRel struct{}
type numRet struct{}
type numRelRet struct{}

// FMeasure computes f-measure, with the beta parameter controlling the precision and recall trade-off.
type FMeasure struct {
	beta float64
}

var (
	// RecallEvaluator calculates recall.
	RecallEvaluator = recallEvaluator{}
	// PrecisionEvaluator calculates precision.
	PrecisionEvaluator = precisionEvaluator{}
	// NumRel is the number of correct identifiers.
	NumRel = numRel{}
	// NumRet is the number of candidate identifiers.
	NumRet = numRet{}
	// NumRelRet is the number of correct candidate identifiers.
	NumRelRet = numRelRet{}

	// F1Measure is f-measure with beta=1.
	F1Measure = FMeasure{beta: 1}
)

func (rec recallEvaluator) Name() string {
	return "Recall"
}

func (rec recallEvaluator) Score(candidates Candidates, qrels trecresults.Qrels) float64 {
	rel := NumRel.Score(candidates, qrels)
	if rel == 0 {
		return 0.0
	}
	return NumRelRet.Score(candidates, qrels) / rel
}

func (rec precisionEvaluator) Name() string {
	return "Precision"
}

func (rec precisionEvaluator) Score(candidates Candidates, qrels trecresults.Qrels) float64 {
	ret := NumRet.Score(candidates, qrels)
	if ret == 0 {
		return 0.0
	}
	return NumRelRet.Score(candidates, qrels) / ret
}

func (numRel) Score(candidates Candidates, qrels trecresults.Qrels) float64 {
	n := 0.0
	for _, qrel := range qrels {
		if qrel.Score > 0 {
			n++
		}
	}
	return n
}

func (numRel) Name() string {
	return "NumRel"
}

func (numRet) Score(candidates Candidates, qrels trecresults.Qrels) float64 {
	return float64(len(candidates))
}

func (numRet) Name() string {
	return "NumRet"
}

func (numRelRet) Score(candidates Candidates, qrels trecresults.Qrels) float64 {
	n := 0.0
	for _, id := range candidates {
		if qrel, ok := qrels[id]; ok && qrel.Score > 0 {
			n++
		}
	}
	return n
}

func (numRelRet) Name() string {
	return "NumRelRet"
}

// Score uses the beta parameter to compute f-measure.
func (f FMeasure) Score(candidates Candidates, qrels trecresults.Qrels) float64 {
	precision := PrecisionEvaluator.Score(candidates, qrels)
	recall := RecallEvaluator.Score(candidates, qrels)
	if precision == 0 || recall == 0 {
		return 0
	}
	betaSquared := math.Pow(f.beta, 2)
	return ((1 + betaSquared) * (precision * recall)) / ((betaSquared * precision) + recall)
}

// Name calculates the name of the f-measure with beta parameter.
func (f FMeasure) Name() string {
	return fmt.Sprintf("F%vMeasure", f.beta)
}
