package metrics

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUndefinedAUROC = errors.New("auroc undefined: fewer than two classes present")

// AUROC computes the area under the ROC curve from class probabilities.
// proba[i][j] is the probability of sample i belonging to classes[j].
//
// With two classes the probability of classes[1] is the score of the
// positive class. With more classes the result is the macro average over
// all class pairs of the one-vs-one AUC (Hand & Till). Pairs of which one
// class does not occur in yTrue are left out.
func AUROC(yTrue []string, proba [][]float64, classes []string) (float64, error) {
	if len(yTrue) == 0 {
		return 0, ErrEmpty
	}
	if len(yTrue) != len(proba) {
		return 0, fmt.Errorf("%d true labels for %d probability rows", len(yTrue), len(proba))
	}
	if len(classes) < 2 {
		return 0, fmt.Errorf("auroc needs at least two classes, got %d", len(classes))
	}
	for i, row := range proba {
		if len(row) != len(classes) {
			return 0, fmt.Errorf("probability row %d has %d columns for %d classes", i, len(row), len(classes))
		}
	}

	if len(classes) == 2 {
		scores := make([]float64, len(yTrue))
		positive := make([]bool, len(yTrue))
		for i := range yTrue {
			scores[i] = proba[i][1]
			positive[i] = yTrue[i] == classes[1]
		}
		return binaryAUC(positive, scores)
	}

	var sum float64
	var pairs int
	for a := 0; a < len(classes); a++ {
		for b := a + 1; b < len(classes); b++ {
			ab, okA := pairAUC(yTrue, proba, classes, a, b)
			ba, okB := pairAUC(yTrue, proba, classes, b, a)
			if !okA || !okB {
				continue
			}
			sum += (ab + ba) / 2
			pairs++
		}
	}
	if pairs == 0 {
		return 0, ErrUndefinedAUROC
	}
	return sum / float64(pairs), nil
}

// pairAUC is the AUC of class pos against class neg on the samples of
// either class, scored by the probability of pos.
func pairAUC(yTrue []string, proba [][]float64, classes []string, pos, neg int) (float64, bool) {
	var positive []bool
	var scores []float64
	for i, y := range yTrue {
		switch y {
		case classes[pos]:
			positive = append(positive, true)
		case classes[neg]:
			positive = append(positive, false)
		default:
			continue
		}
		scores = append(scores, proba[i][pos])
	}
	auc, err := binaryAUC(positive, scores)
	return auc, err == nil
}

// binaryAUC uses the Mann-Whitney U statistic with average ranks for ties.
func binaryAUC(positive []bool, scores []float64) (float64, error) {
	nPos := 0
	for _, p := range positive {
		if p {
			nPos++
		}
	}
	nNeg := len(positive) - nPos
	if nPos == 0 || nNeg == 0 {
		return 0, ErrUndefinedAUROC
	}

	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return scores[idx[i]] < scores[idx[j]] })

	ranks := make([]float64, len(scores))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && scores[idx[j+1]] == scores[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}

	var rankSum float64
	for i, p := range positive {
		if p {
			rankSum += ranks[i]
		}
	}
	u := rankSum - float64(nPos*(nPos+1))/2
	return u / float64(nPos*nNeg), nil
}
