package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/ts-bench/internal/archive"
	"github.com/DjordjeVuckovic/ts-bench/internal/archive/es"
	"github.com/DjordjeVuckovic/ts-bench/internal/archive/inmem"
	"github.com/DjordjeVuckovic/ts-bench/internal/archive/pg"
)

// New creates the archiver selected by cfg.Type.
func New(ctx context.Context, cfg *Config) (archive.Archiver, error) {
	switch cfg.Type {
	case archive.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewArchiver(pool), nil

	case archive.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		return es.NewArchiver(ctx, *cfg.Es)

	case archive.InMem:
		return inmem.NewArchiver(), nil

	default:
		return nil, fmt.Errorf("unsupported archive type: %s", cfg.Type)
	}
}
