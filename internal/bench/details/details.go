package details

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/ts-bench/pkg/jsonobj"
)

// Grouping properties understood by GroupBy.
const (
	PropertyClasses    = "classes"
	PropertyDimensions = "dimensions"
	PropertyDomain     = "domain"
)

// Record describes one dataset of an archive.
type Record struct {
	ShortName      string    `json:"short_name"`
	Name           string    `json:"name"`
	Dimensions     int       `json:"num_of_dimensions"`
	Instances      int       `json:"num_of_instances"`
	Timestamps     int       `json:"num_of_timestamps"`
	Classes        int       `json:"num_of_classes"`
	UniqueLengths  bool      `json:"unique_lengths"`
	MissingValues  int       `json:"missing_values_count"`
	TrainInstances int       `json:"len train set"`
	TestInstances  int       `json:"len test set"`
	Imbalance      string    `json:"imbalance"`
	ClassRatios    []float64 `json:"class_ratios,omitempty"`
	Domain         string    `json:"domain,omitempty"`
}

// Details maps dataset names to their records in insertion order.
type Details struct {
	names   []string
	records map[string]Record
}

func New() *Details {
	return &Details{records: make(map[string]Record)}
}

func (d *Details) Add(r Record) {
	if d.records == nil {
		d.records = make(map[string]Record)
	}
	if _, ok := d.records[r.Name]; !ok {
		d.names = append(d.names, r.Name)
	}
	d.records[r.Name] = r
}

func (d *Details) Get(name string) (Record, bool) {
	r, ok := d.records[name]
	return r, ok
}

// ShortName returns the display name of a dataset.
func (d *Details) ShortName(name string) (string, error) {
	r, ok := d.records[name]
	if !ok {
		return "", apperr.NewValidation(fmt.Sprintf("dataset %q has no details", name))
	}
	return r.ShortName, nil
}

func (d *Details) Names() []string { return slices.Clone(d.names) }

func (d *Details) Len() int { return len(d.names) }

// Records returns all records in insertion order.
func (d *Details) Records() []Record {
	out := make([]Record, 0, len(d.names))
	for _, n := range d.names {
		out = append(out, d.records[n])
	}
	return out
}

// Describe builds the record of a dataset that was split into train and test.
func Describe(name string, train, test *dataset.Dataset) Record {
	classes := train.Classes()
	counts := train.ClassCounts()

	ratios := make([]float64, 0, len(classes))
	lo, hi := train.Len(), 0
	for _, c := range classes {
		n := counts[c]
		ratios = append(ratios, float64(n)/float64(train.Len()))
		lo = min(lo, n)
		hi = max(hi, n)
	}
	var imbalance float64
	if train.Len() > 0 {
		imbalance = float64(hi-lo) / float64(train.Len())
	}

	return Record{
		Name:           name,
		Dimensions:     train.Dimensions(),
		Instances:      train.Len(),
		Timestamps:     train.Timestamps(),
		Classes:        len(classes),
		UniqueLengths:  train.EqualLength(),
		MissingValues:  train.MissingValues(),
		TrainInstances: train.Len(),
		TestInstances:  test.Len(),
		Imbalance:      fmt.Sprintf("%.2f%%", imbalance*100),
		ClassRatios:    ratios,
	}
}

// Generate numbers the records "DS 1", "DS 2", ... in the given order.
func Generate(records []Record) *Details {
	d := New()
	for i, r := range records {
		r.ShortName = fmt.Sprintf("DS %d", i+1)
		d.Add(r)
	}
	return d
}

// SetDomains tags datasets with their application domain. Names without a
// record are ignored.
func (d *Details) SetDomains(domains map[string]string) {
	for name, domain := range domains {
		if r, ok := d.records[name]; ok {
			r.Domain = domain
			d.records[name] = r
		}
	}
}

// Group is a set of datasets sharing one property value.
type Group struct {
	Label    string
	Value    float64
	Datasets []string
}

// GroupBy groups the named datasets by a property. Numeric properties are
// ordered numerically and positioned at their value; domains are ordered
// lexically and positioned at their 1-based index.
func (d *Details) GroupBy(property string, datasets []string) ([]Group, error) {
	numeric := property != PropertyDomain
	byLabel := make(map[string]*Group)
	var groups []*Group

	for _, name := range datasets {
		r, ok := d.records[name]
		if !ok {
			return nil, apperr.NewValidation(fmt.Sprintf("dataset %q has no details", name))
		}

		var label string
		var value float64
		switch property {
		case PropertyClasses:
			label, value = strconv.Itoa(r.Classes), float64(r.Classes)
		case PropertyDimensions:
			label, value = strconv.Itoa(r.Dimensions), float64(r.Dimensions)
		case PropertyDomain:
			label = r.Domain
			if label == "" {
				label = "unknown"
			}
		default:
			return nil, apperr.NewValidation(fmt.Sprintf("unknown grouping property %q", property))
		}

		g, ok := byLabel[label]
		if !ok {
			g = &Group{Label: label, Value: value}
			byLabel[label] = g
			groups = append(groups, g)
		}
		g.Datasets = append(g.Datasets, name)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if numeric {
			return groups[i].Value < groups[j].Value
		}
		return groups[i].Label < groups[j].Label
	})

	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = *g
		if !numeric {
			out[i].Value = float64(i + 1)
		}
	}
	return out, nil
}

// ClassCardinalities returns the distinct class counts in ascending order.
func (d *Details) ClassCardinalities() []int {
	return d.distinct(func(r Record) int { return r.Classes })
}

// DatasetsWithClasses returns the datasets having n classes.
func (d *Details) DatasetsWithClasses(n int) []string {
	return d.filter(func(r Record) bool { return r.Classes == n })
}

func (d *Details) Dimensionalities() []int {
	return d.distinct(func(r Record) int { return r.Dimensions })
}

func (d *Details) DatasetsWithDimensions(n int) []string {
	return d.filter(func(r Record) bool { return r.Dimensions == n })
}

func (d *Details) Domains() []string {
	var out []string
	for _, n := range d.names {
		if dom := d.records[n].Domain; dom != "" && !slices.Contains(out, dom) {
			out = append(out, dom)
		}
	}
	slices.Sort(out)
	return out
}

func (d *Details) DatasetsInDomain(domain string) []string {
	return d.filter(func(r Record) bool { return r.Domain == domain })
}

// Partition splits every dataset of d by a property, one group per distinct
// value in ascending order. Datasets without a domain are left out of the
// domain partition.
func (d *Details) Partition(property string) ([]Group, error) {
	var groups []Group
	switch property {
	case PropertyClasses:
		for _, n := range d.ClassCardinalities() {
			groups = append(groups, Group{Label: strconv.Itoa(n), Value: float64(n), Datasets: d.DatasetsWithClasses(n)})
		}
	case PropertyDimensions:
		for _, n := range d.Dimensionalities() {
			groups = append(groups, Group{Label: strconv.Itoa(n), Value: float64(n), Datasets: d.DatasetsWithDimensions(n)})
		}
	case PropertyDomain:
		for i, dom := range d.Domains() {
			groups = append(groups, Group{Label: dom, Value: float64(i + 1), Datasets: d.DatasetsInDomain(dom)})
		}
	default:
		return nil, apperr.NewValidation(fmt.Sprintf("unknown grouping property %q", property))
	}
	return groups, nil
}

func (d *Details) distinct(key func(Record) int) []int {
	var out []int
	for _, n := range d.names {
		if v := key(d.records[n]); !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

func (d *Details) filter(keep func(Record) bool) []string {
	var out []string
	for _, n := range d.names {
		if keep(d.records[n]) {
			out = append(out, n)
		}
	}
	return out
}

func (d *Details) UnmarshalJSON(data []byte) error {
	*d = *New()
	return jsonobj.Walk(data, func(key string, raw json.RawMessage) error {
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			return fmt.Errorf("dataset %q: %w", key, err)
		}
		if r.Name == "" {
			r.Name = key
		}
		d.Add(r)
		return nil
	})
}

func (d *Details) MarshalJSON() ([]byte, error) {
	w := jsonobj.NewWriter()
	for _, n := range d.names {
		if err := w.Value(n, d.records[n]); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func LoadFromFile(path string) (*Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read details file: %w", err)
	}
	d := New()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, apperr.NewValidationWrap("parse details JSON", err)
	}
	return d, nil
}

func WriteFile(d *Details, path string) error {
	compact, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "      "); err != nil {
		return fmt.Errorf("indent details: %w", err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("write details file: %w", err)
	}
	return nil
}
