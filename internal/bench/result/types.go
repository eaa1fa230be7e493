package result

import "sort"

// Well-known keys of a benchmark result file.
const (
	KeyProperties = "properties"
	KeyArguments  = "arguments"

	ScoreAccuracy        = "accuracy"
	ScoreRecall          = "recall"
	ScoreF1              = "f1-score"
	ScoreAUROC           = "auroc"
	ScoreRuntime         = "runtime"
	ScoreMemoryFootprint = "memory_footprint"
)

// ScoreRecord holds the scores one metric configuration achieved on one dataset.
// Score order follows the order the scores were added or decoded in.
type ScoreRecord struct {
	Arguments map[string]any

	names  []string
	values map[string]float64
}

func NewScoreRecord() *ScoreRecord {
	return &ScoreRecord{
		Arguments: make(map[string]any),
		values:    make(map[string]float64),
	}
}

func (r *ScoreRecord) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *ScoreRecord) Get(name string) (float64, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set stores a score, appending the name when it is new.
func (r *ScoreRecord) Set(name string, value float64) {
	if r.values == nil {
		r.values = make(map[string]float64)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

func (r *ScoreRecord) Delete(name string) {
	if _, ok := r.values[name]; !ok {
		return
	}
	delete(r.values, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

func (r *ScoreRecord) Len() int { return len(r.names) }

// Values returns a copy of the scores keyed by name.
func (r *ScoreRecord) Values() map[string]float64 {
	out := make(map[string]float64, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Window returns the warping window argument of the record, if any.
func (r *ScoreRecord) Window() (float64, bool) {
	v, ok := r.Arguments["window"]
	if !ok {
		return 0, false
	}
	switch w := v.(type) {
	case float64:
		return w, true
	case int:
		return float64(w), true
	default:
		return 0, false
	}
}

func (r *ScoreRecord) Clone() *ScoreRecord {
	c := NewScoreRecord()
	for k, v := range r.Arguments {
		c.Arguments[k] = v
	}
	for _, n := range r.names {
		c.Set(n, r.values[n])
	}
	return c
}

// Properties is the static descriptor block stored per dataset.
type Properties struct {
	keys   []string
	values map[string]any
}

func (p *Properties) Set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Properties) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Int returns a numeric property as int.
func (p *Properties) Int(key string) (int, bool) {
	switch v := p.values[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func (p *Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// DatasetResult groups the properties of a dataset and the score record of every metric run on it.
type DatasetResult struct {
	Properties Properties

	metrics []string
	records map[string]*ScoreRecord
}

func NewDatasetResult() *DatasetResult {
	return &DatasetResult{records: make(map[string]*ScoreRecord)}
}

func (d *DatasetResult) Metrics() []string {
	out := make([]string, len(d.metrics))
	copy(out, d.metrics)
	return out
}

func (d *DatasetResult) Record(metric string) (*ScoreRecord, bool) {
	r, ok := d.records[metric]
	return r, ok
}

func (d *DatasetResult) SetRecord(metric string, rec *ScoreRecord) {
	if d.records == nil {
		d.records = make(map[string]*ScoreRecord)
	}
	if _, ok := d.records[metric]; !ok {
		d.metrics = append(d.metrics, metric)
	}
	d.records[metric] = rec
}

// ResultSet maps dataset names to their results in file order.
type ResultSet struct {
	datasets []string
	byName   map[string]*DatasetResult
}

func New() *ResultSet {
	return &ResultSet{byName: make(map[string]*DatasetResult)}
}

func (rs *ResultSet) Datasets() []string {
	out := make([]string, len(rs.datasets))
	copy(out, rs.datasets)
	return out
}

func (rs *ResultSet) Dataset(name string) (*DatasetResult, bool) {
	d, ok := rs.byName[name]
	return d, ok
}

// Set adds or replaces a dataset; replacing keeps its original position.
func (rs *ResultSet) Set(name string, d *DatasetResult) {
	if rs.byName == nil {
		rs.byName = make(map[string]*DatasetResult)
	}
	if _, ok := rs.byName[name]; !ok {
		rs.datasets = append(rs.datasets, name)
	}
	rs.byName[name] = d
}

func (rs *ResultSet) Len() int { return len(rs.datasets) }

// SortedMetrics returns the schema metrics in lexical order.
func (rs *ResultSet) SortedMetrics() []string {
	m := rs.Metrics()
	sort.Strings(m)
	return m
}
