package metrics

import (
	"errors"
	"fmt"
)

var ErrEmpty = errors.New("no samples")

// Accuracy computes the fraction of predictions equal to the true label.
func Accuracy(yTrue, yPred []string) (float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return 0, err
	}

	var correct int
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// MacroRecall is the unweighted mean of the per-class recall over all labels
// seen in yTrue or yPred.
func MacroRecall(yTrue, yPred []string) (float64, error) {
	return macro(yTrue, yPred, func(c classCounts) float64 { return ratio(c.tp, c.tp+c.fn) })
}

// MacroPrecision is the unweighted mean of the per-class precision.
func MacroPrecision(yTrue, yPred []string) (float64, error) {
	return macro(yTrue, yPred, func(c classCounts) float64 { return ratio(c.tp, c.tp+c.fp) })
}

// MacroF1 is the unweighted mean of the per-class harmonic mean of precision
// and recall.
func MacroF1(yTrue, yPred []string) (float64, error) {
	return macro(yTrue, yPred, func(c classCounts) float64 { return ratio(2*c.tp, 2*c.tp+c.fp+c.fn) })
}

type classCounts struct {
	tp, fp, fn int
}

func macro(yTrue, yPred []string, perClass func(classCounts) float64) (float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return 0, err
	}

	counts := make(map[string]*classCounts)
	get := func(label string) *classCounts {
		c, ok := counts[label]
		if !ok {
			c = &classCounts{}
			counts[label] = c
		}
		return c
	}

	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			get(yTrue[i]).tp++
			continue
		}
		get(yTrue[i]).fn++
		get(yPred[i]).fp++
	}

	var sum float64
	for _, c := range counts {
		sum += perClass(*c)
	}
	return sum / float64(len(counts)), nil
}

// ratio returns 0 when the denominator is 0.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func checkLengths(yTrue, yPred []string) error {
	if len(yTrue) == 0 {
		return ErrEmpty
	}
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%d true labels for %d predictions", len(yTrue), len(yPred))
	}
	return nil
}
