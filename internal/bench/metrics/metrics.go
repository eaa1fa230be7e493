package metrics

// ScoreSet holds the scores of one classifier run on one dataset.
type ScoreSet struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	AUROC     float64
}

// ComputeAll scores predictions and class probabilities against the true
// labels. When only the AUROC cannot be computed the other scores are still
// returned along with the error.
func ComputeAll(yTrue, yPred []string, proba [][]float64, classes []string) (ScoreSet, error) {
	var s ScoreSet
	var err error

	if s.Accuracy, err = Accuracy(yTrue, yPred); err != nil {
		return ScoreSet{}, err
	}
	if s.Precision, err = MacroPrecision(yTrue, yPred); err != nil {
		return ScoreSet{}, err
	}
	if s.Recall, err = MacroRecall(yTrue, yPred); err != nil {
		return ScoreSet{}, err
	}
	if s.F1, err = MacroF1(yTrue, yPred); err != nil {
		return ScoreSet{}, err
	}
	if s.AUROC, err = AUROC(yTrue, proba, classes); err != nil {
		return s, err
	}
	return s, nil
}
