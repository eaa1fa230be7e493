package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/ts-bench/pkg/config/env"
	"github.com/DjordjeVuckovic/ts-bench/pkg/stringsutil"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// ResultsFiles are merged into the result set served by the API.
	ResultsFiles []string
	DetailsFile  string
}

func LoadConfig(defaultEnvPath string) (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), defaultEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := stringsutil.SplitList(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	files := stringsutil.SplitList(os.Getenv("RESULTS_FILES"))
	if len(files) == 0 {
		return nil, errors.New("RESULTS_FILES environment variable is not set")
	}
	detailsFile := os.Getenv("DETAILS_FILE")
	if detailsFile == "" {
		return nil, errors.New("DETAILS_FILE environment variable is not set")
	}

	return &Config{
		Port:         port,
		UseHttp2:     os.Getenv("USE_HTTP2") == "true",
		CorsOrigins:  origins,
		ResultsFiles: files,
		DetailsFile:  detailsFile,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
