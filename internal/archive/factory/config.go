package factory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/ts-bench/internal/archive"
	"github.com/DjordjeVuckovic/ts-bench/internal/archive/es"
	"github.com/DjordjeVuckovic/ts-bench/internal/archive/pg"
	"github.com/DjordjeVuckovic/ts-bench/pkg/stringsutil"
)

type Config struct {
	archive.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig
}

func LoadEnv() (*Config, error) {
	archiveType := archive.Type(os.Getenv("ARCHIVE_TYPE"))
	if archiveType == "" {
		slog.Error("ARCHIVE_TYPE environment variable is not set")
		return nil, fmt.Errorf("ARCHIVE_TYPE environment variable is not set")
	}
	if archiveType != archive.ES && archiveType != archive.PG && archiveType != archive.InMem {
		slog.Error("Invalid ARCHIVE_TYPE environment variable value", "value", archiveType)
		return nil, fmt.Errorf(
			"invalid ARCHIVE_TYPE environment variable value: %s, expected one of %v",
			archiveType,
			[]archive.Type{archive.ES, archive.PG, archive.InMem})
	}

	cfg := &Config{Type: archiveType}
	switch archiveType {
	case archive.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: stringsutil.SplitList(os.Getenv("ES_ADDRESSES")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(cfg.Es.Addresses) == 0 || cfg.Es.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses, "indexName", cfg.Es.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	case archive.PG:
		cfg.Pg = &pg.PoolConfig{ConnStr: os.Getenv("PG_CONNECTION_STRING")}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}
	return cfg, nil
}
