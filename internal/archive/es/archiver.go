package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/ts-bench/internal/archive"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

type Archiver struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewArchiver(ctx context.Context, config ClientConfig) (*Archiver, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	a := &Archiver{
		client:    client,
		indexName: config.IndexName,
	}

	if err := a.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return a, nil
}

// Save bulk indexes every record of the run, one document per dataset/metric.
func (a *Archiver) Save(ctx context.Context, run archive.Run) error {
	docs := run.Documents()
	if len(docs) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         a.indexName,
		Client:        a.client,
		NumWorkers:    2,
		FlushBytes:    5e+6,
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed atomic.Int64
	for _, d := range docs {
		body, err := json.Marshal(d)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "dataset", d.Dataset, "metric", d.Metric)
			failed.Add(1)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: d.ID.String(),
			Body:       bytes.NewReader(body),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				successful.Add(1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "id", d.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Archived run",
		"run", run.Name,
		"id", run.ID,
		"successful", successful.Load(),
		"failed", failed.Load(),
		"index", a.indexName)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d documents", n, len(docs))
	}
	return nil
}

func (a *Archiver) EnsureIndex(ctx context.Context) error {
	exists, err := a.client.Indices.Exists(a.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Info("Index already exists", "index", a.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":         types.NewKeywordProperty(),
			"run_id":     types.NewKeywordProperty(),
			"run_name":   types.NewKeywordProperty(),
			"dataset":    types.NewKeywordProperty(),
			"metric":     types.NewKeywordProperty(),
			"scores":     types.NewObjectProperty(),
			"arguments":  types.NewFlattenedProperty(),
			"created_at": types.NewDateProperty(),
		},
	}

	res, err := a.client.Indices.Create(a.indexName).Mappings(&mappings).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", a.indexName)
	return nil
}

// Count returns the number of archived documents of a run.
func (a *Archiver) Count(ctx context.Context, run archive.Run) (int64, error) {
	if _, err := a.client.Indices.Refresh().Index(a.indexName).Do(ctx); err != nil {
		return 0, fmt.Errorf("failed to refresh index: %w", err)
	}
	id := run.ID.String()
	res, err := a.client.Count().Index(a.indexName).Query(&types.Query{
		Term: map[string]types.TermQuery{"run_id": {Value: id}},
	}).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return res.Count, nil
}

func (a *Archiver) Close() {}
