package result

import (
	"fmt"
	"slices"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
)

// Merge copies all datasets of other into rs. Datasets present in both are replaced.
func (rs *ResultSet) Merge(other *ResultSet) {
	for _, name := range other.datasets {
		rs.Set(name, other.byName[name])
	}
}

// RenameMetric renames a metric in every dataset. It fails without touching
// anything when the new name is already taken somewhere.
func (rs *ResultSet) RenameMetric(from, to string) error {
	for _, name := range rs.datasets {
		if _, ok := rs.byName[name].records[to]; ok {
			return apperr.NewValidation(fmt.Sprintf("dataset %q already has metric %q", name, to))
		}
	}

	renamed := 0
	for _, name := range rs.datasets {
		d := rs.byName[name]
		for i, m := range d.metrics {
			if m == from {
				d.metrics[i] = to
				d.records[to] = d.records[from]
				delete(d.records, from)
				renamed++
				break
			}
		}
	}
	if renamed == 0 {
		return apperr.NewValidation(fmt.Sprintf("metric %q not found", from))
	}
	return nil
}

// DropScores removes the given scores from every record.
func (rs *ResultSet) DropScores(scores ...string) {
	for _, name := range rs.datasets {
		d := rs.byName[name]
		for _, m := range d.metrics {
			for _, s := range scores {
				d.records[m].Delete(s)
			}
		}
	}
}

// Subset returns a view restricted to the given metrics, in the given order.
func (rs *ResultSet) Subset(metrics []string) (*ResultSet, error) {
	out := New()
	for _, name := range rs.datasets {
		src := rs.byName[name]
		d := NewDatasetResult()
		d.Properties = src.Properties
		for _, m := range metrics {
			rec, ok := src.records[m]
			if !ok {
				return nil, apperr.NewValidation(fmt.Sprintf("dataset %q has no metric %q", name, m))
			}
			d.SetRecord(m, rec)
		}
		out.Set(name, d)
	}
	return out, nil
}

// Window returns the warping window recorded in the arguments of the first record
// carrying one.
func (rs *ResultSet) Window() (float64, bool) {
	for _, name := range rs.datasets {
		d := rs.byName[name]
		for _, m := range d.metrics {
			if w, ok := d.records[m].Window(); ok {
				return w, true
			}
		}
	}
	return 0, false
}

// Remove deletes datasets from the set.
func (rs *ResultSet) Remove(names ...string) {
	for _, name := range names {
		if _, ok := rs.byName[name]; !ok {
			continue
		}
		delete(rs.byName, name)
		rs.datasets = slices.DeleteFunc(rs.datasets, func(n string) bool { return n == name })
	}
}
