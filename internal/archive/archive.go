package archive

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/google/uuid"
)

// Archiver stores benchmark runs in a queryable backend.
type Archiver interface {
	Save(ctx context.Context, run Run) error
	Close()
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

// Run is one archived result file.
type Run struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	Results   *result.ResultSet
}

// NewRun assigns a fresh id and timestamp.
func NewRun(name string, rs *result.ResultSet) Run {
	return Run{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Results:   rs,
	}
}

// Document is the flattened form of one dataset/metric record.
type Document struct {
	ID        uuid.UUID          `json:"id"`
	RunID     uuid.UUID          `json:"run_id"`
	RunName   string             `json:"run_name"`
	Dataset   string             `json:"dataset"`
	Metric    string             `json:"metric"`
	Scores    map[string]float64 `json:"scores"`
	Arguments map[string]any     `json:"arguments,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Documents flattens a run in dataset then metric order. Runs without an id
// or timestamp get one.
func (r *Run) Documents() []Document {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Results == nil {
		return nil
	}

	var docs []Document
	for _, ds := range r.Results.Datasets() {
		d, _ := r.Results.Dataset(ds)
		for _, m := range d.Metrics() {
			rec, _ := d.Record(m)
			docs = append(docs, Document{
				ID:        uuid.New(),
				RunID:     r.ID,
				RunName:   r.Name,
				Dataset:   ds,
				Metric:    m,
				Scores:    rec.Values(),
				Arguments: rec.Arguments,
				CreatedAt: r.CreatedAt,
			})
		}
	}
	return docs
}
