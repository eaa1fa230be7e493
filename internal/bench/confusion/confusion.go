// Package confusion back-derives confusion matrix values from the
// aggregate scores of a binary-style evaluation.
package confusion

import (
	"errors"
	"fmt"
	"math"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

// ErrUndefined is returned when the scores leave a denominator at zero, most
// notably for accuracy = recall = F1 = 1.
var ErrUndefined = errors.New("confusion values undefined for these scores")

// Names of the scores added by AddDerived, in insertion order.
const (
	DerivedAccuracy = "derived-accuracy"
	DerivedRecall   = "derived-recall"
	DerivedF1       = "derived-f1-score"
	DerivedAUROC    = "derived-auroc"
	Precision       = "precision"
	Specificity     = "specificity"
	TP              = "tp"
	TN              = "tn"
	FP              = "fp"
	FN              = "fn"
)

type Values struct {
	Precision   float64
	TP          float64
	TN          float64
	FP          float64
	FN          float64
	Specificity float64
	FPR         float64
	Accuracy    float64
	Recall      float64
	F1          float64
	AUROC       float64
}

// Derive reconstructs tp/tn/fp/fn from accuracy, recall and F1 of a test set
// with total instances.
func Derive(accuracy, recall, f1, total float64) (Values, error) {
	div := func(a, b float64) (float64, error) {
		if b == 0 || math.IsNaN(b) {
			return 0, ErrUndefined
		}
		q := a / b
		if math.IsInf(q, 0) || math.IsNaN(q) {
			return 0, ErrUndefined
		}
		return q, nil
	}

	var v Values
	var err error

	if v.Precision, err = div(f1*recall, 2*recall-f1); err != nil {
		return Values{}, err
	}
	invP, err := div(1, v.Precision)
	if err != nil {
		return Values{}, err
	}
	invR, err := div(1, recall)
	if err != nil {
		return Values{}, err
	}
	if v.TP, err = div(total*(1-accuracy), invP+invR-2); err != nil {
		return Values{}, err
	}

	v.TN = accuracy*total - v.TP
	v.FP = v.TP*invP - v.TP
	v.FN = v.TP*invR - v.TP

	if v.Specificity, err = div(v.TN, v.FP+v.TN); err != nil {
		return Values{}, err
	}
	v.FPR = 1 - v.Specificity

	if v.Accuracy, err = div(v.TP+v.TN, v.TP+v.FP+v.TN+v.FN); err != nil {
		return Values{}, err
	}
	if v.Recall, err = div(v.TP, v.TP+v.FN); err != nil {
		return Values{}, err
	}
	if v.F1, err = div(2*v.Precision*v.Recall, v.Precision+v.Recall); err != nil {
		return Values{}, err
	}

	tpr := recall
	v.AUROC = v.FPR*tpr/2 + v.Specificity*(1-tpr)/2 + v.Specificity*tpr
	return v, nil
}

// DeriveRecord reads the inputs of Derive from a score record.
func DeriveRecord(rec *result.ScoreRecord, total float64) (Values, error) {
	get := func(name string) (float64, error) {
		v, ok := rec.Get(name)
		if !ok {
			return 0, fmt.Errorf("record has no score %q", name)
		}
		return v, nil
	}
	acc, err := get(result.ScoreAccuracy)
	if err != nil {
		return Values{}, err
	}
	rec2, err := get(result.ScoreRecall)
	if err != nil {
		return Values{}, err
	}
	f1, err := get(result.ScoreF1)
	if err != nil {
		return Values{}, err
	}
	return Derive(acc, rec2, f1, total)
}

// Skipped names a record whose derived values are undefined.
type Skipped struct {
	Dataset string
	Metric  string
	Err     error
}

// AddDerived stores the derived values in every record of rs. The total of
// a dataset is its test set size from det. When any record is undefined,
// rs is left unchanged and the undefined records are returned, keeping the
// score schema identical across all records.
func AddDerived(rs *result.ResultSet, det *details.Details) ([]Skipped, error) {
	type pending struct {
		rec    *result.ScoreRecord
		values Values
	}
	var todo []pending
	var skipped []Skipped

	for _, ds := range rs.Datasets() {
		info, ok := det.Get(ds)
		if !ok {
			return nil, apperr.NewValidation(fmt.Sprintf("dataset %q has no details", ds))
		}
		d, _ := rs.Dataset(ds)
		for _, m := range d.Metrics() {
			rec, _ := d.Record(m)
			v, err := DeriveRecord(rec, float64(info.TestInstances))
			if errors.Is(err, ErrUndefined) {
				skipped = append(skipped, Skipped{Dataset: ds, Metric: m, Err: err})
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("dataset %q metric %q: %w", ds, m, err)
			}
			todo = append(todo, pending{rec: rec, values: v})
		}
	}

	if len(skipped) > 0 {
		return skipped, nil
	}
	for _, p := range todo {
		apply(p.rec, p.values)
	}
	return nil, nil
}

// AddDerivedDropping removes every dataset with an undefined record from rs
// and derives the values for the remaining ones. It returns the removed
// datasets.
func AddDerivedDropping(rs *result.ResultSet, det *details.Details) ([]string, error) {
	skipped, err := AddDerived(rs, det)
	if err != nil || len(skipped) == 0 {
		return nil, err
	}

	dropped := SkippedDatasets(skipped)
	rs.Remove(dropped...)
	if rs.Len() == 0 {
		return dropped, fmt.Errorf("confusion values undefined for every dataset")
	}
	if _, err := AddDerived(rs, det); err != nil {
		return nil, err
	}
	return dropped, nil
}

// SkippedDatasets returns the distinct datasets of a skip list in order.
func SkippedDatasets(skipped []Skipped) []string {
	var out []string
	for _, s := range skipped {
		if len(out) == 0 || out[len(out)-1] != s.Dataset {
			out = append(out, s.Dataset)
		}
	}
	return out
}

func apply(rec *result.ScoreRecord, v Values) {
	rec.Set(DerivedAccuracy, v.Accuracy)
	rec.Set(DerivedRecall, v.Recall)
	rec.Set(DerivedF1, v.F1)
	rec.Set(DerivedAUROC, v.AUROC)
	rec.Set(Precision, v.Precision)
	rec.Set(Specificity, v.Specificity)
	rec.Set(TP, v.TP)
	rec.Set(TN, v.TN)
	rec.Set(FP, v.FP)
	rec.Set(FN, v.FN)
}
