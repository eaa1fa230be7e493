package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/ts-bench/internal/archive"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertScore = `
        INSERT INTO benchmark_scores (id, run_id, run_name, dataset, metric, scores, arguments, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (run_id, dataset, metric) DO UPDATE
        SET scores = EXCLUDED.scores, arguments = EXCLUDED.arguments;
    `

type Archiver struct {
	pool *ConnectionPool
	db   *pgxpool.Pool
}

func NewArchiver(pool *ConnectionPool) *Archiver {
	return &Archiver{pool: pool, db: pool.GetConn()}
}

// Save writes every record of the run in one batch.
func (a *Archiver) Save(ctx context.Context, run archive.Run) error {
	docs := run.Documents()
	if len(docs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, d := range docs {
		args := d.Arguments
		if args == nil {
			args = map[string]any{}
		}
		batch.Queue(insertScore, d.ID, d.RunID, d.RunName, d.Dataset, d.Metric, d.Scores, args, d.CreatedAt)
	}

	br := a.db.SendBatch(ctx, batch)
	for i := range docs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert score %s/%s: %w", docs[i].Dataset, docs[i].Metric, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	slog.Info("Archived run", "run", run.Name, "id", run.ID, "documents", len(docs))
	return nil
}

// Scores reads back the scores of one record of a run.
func (a *Archiver) Scores(ctx context.Context, run archive.Run, dataset, metric string) (map[string]float64, error) {
	var scores map[string]float64
	err := a.db.QueryRow(ctx,
		`SELECT scores FROM benchmark_scores WHERE run_id = $1 AND dataset = $2 AND metric = $3`,
		run.ID, dataset, metric,
	).Scan(&scores)
	if err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	return scores, nil
}

func (a *Archiver) Count(ctx context.Context, run archive.Run) (int, error) {
	var n int
	err := a.db.QueryRow(ctx, `SELECT COUNT(*) FROM benchmark_scores WHERE run_id = $1`, run.ID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return n, nil
}

func (a *Archiver) Healthy(ctx context.Context) bool {
	return a.pool != nil && a.pool.Ping(ctx) == nil
}

func (a *Archiver) Close() {
	a.pool.Close()
}
