package rank

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/DjordjeVuckovic/ts-bench/pkg/jsonobj"
)

var perfectScores = []string{result.ScoreAccuracy, result.ScoreRecall, result.ScoreF1}

// PerfectScores collects the records that classified a dataset without a
// single error, grouped by dataset and warping window size.
type PerfectScores struct {
	datasets []string
	byName   map[string]*result.ResultSet
}

func NewPerfectScores() *PerfectScores {
	return &PerfectScores{byName: make(map[string]*result.ResultSet)}
}

func WindowKey(scb string) string {
	return fmt.Sprintf("Warping Window Size = %s", scb)
}

// Add scans rs and stores every metric whose accuracy, recall and F1 are
// exactly 1. Arguments and runtime are dropped. A metric already stored for
// the same dataset and window is kept.
func (p *PerfectScores) Add(rs *result.ResultSet, scb string) int {
	key := WindowKey(scb)
	added := 0

	for _, ds := range rs.Datasets() {
		d, _ := rs.Dataset(ds)
		metrics := d.Metrics()
		slices.Sort(metrics)

		for _, m := range metrics {
			rec, _ := d.Record(m)
			if !isPerfect(rec) {
				continue
			}

			windows, ok := p.byName[ds]
			if !ok {
				windows = result.New()
				p.byName[ds] = windows
				p.datasets = append(p.datasets, ds)
			}
			entry, ok := windows.Dataset(key)
			if !ok {
				entry = result.NewDatasetResult()
				windows.Set(key, entry)
			}
			if _, exists := entry.Record(m); exists {
				continue
			}

			kept := rec.Clone()
			kept.Arguments = nil
			kept.Delete(result.ScoreRuntime)
			entry.SetRecord(m, kept)
			added++
		}
	}
	return added
}

func isPerfect(rec *result.ScoreRecord) bool {
	for _, s := range perfectScores {
		v, ok := rec.Get(s)
		if !ok || v != 1.0 {
			return false
		}
	}
	return true
}

func (p *PerfectScores) Datasets() []string { return slices.Clone(p.datasets) }

// Metrics returns the perfect metrics of a dataset under a window key.
func (p *PerfectScores) Metrics(dataset, scb string) []string {
	windows, ok := p.byName[dataset]
	if !ok {
		return nil
	}
	entry, ok := windows.Dataset(WindowKey(scb))
	if !ok {
		return nil
	}
	return entry.Metrics()
}

func (p *PerfectScores) MarshalJSON() ([]byte, error) {
	w := jsonobj.NewWriter()
	for _, ds := range p.datasets {
		if err := w.Value(ds, p.byName[ds]); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (p *PerfectScores) WriteFile(path string) error {
	data, err := json.MarshalIndent(p, "", "      ")
	if err != nil {
		return fmt.Errorf("marshal perfect scores: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write perfect scores: %w", err)
	}
	return nil
}
