package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	pkgserver "github.com/DjordjeVuckovic/ts-bench/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(s *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthChecks(t *testing.T) {
	cfg := &Config{Port: "8080", CorsOrigins: []string{"*"}}

	t.Run("healthy", func(t *testing.T) {
		s := New(cfg, pkgserver.NewOkHealthChecker()).SetupMiddlewares().SetupHealthChecks()
		rec := serve(s, "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("unhealthy", func(t *testing.T) {
		s := New(cfg, pkgserver.HealthCheckFunc(func(context.Context) bool { return false })).SetupHealthChecks()
		rec := serve(s, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "http error",
			err:        echo.NewHTTPError(http.StatusNotFound, "dataset not found"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "dataset not found",
		},
		{
			name:       "wrapped validation error",
			err:        fmt.Errorf("correlate: %w", apperr.NewValidation("unknown grouping property")),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "unknown grouping property",
		},
		{
			name:       "not found error",
			err:        apperr.NewNotFound("dataset", "Nope"),
			wantStatus: http.StatusNotFound,
			wantMsg:    `dataset "Nope" not found`,
		},
		{
			name:       "internal error",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&Config{}, pkgserver.NewOkHealthChecker()).SetupErrorHandler()
			s.Echo.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := serve(s, "/fail")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestLoadConfig(t *testing.T) {
	setEnv := func(t *testing.T, env map[string]string) {
		t.Helper()
		t.Setenv("ENV", "test")
		t.Setenv("ENV_PATH", "testdata/missing.env")
		for _, key := range []string{"PORT", "USE_HTTP2", "CORS_ORIGINS", "RESULTS_FILES", "DETAILS_FILE"} {
			t.Setenv(key, env[key])
		}
	}

	t.Run("defaults", func(t *testing.T) {
		setEnv(t, map[string]string{"RESULTS_FILES": "a.json, b.json,", "DETAILS_FILE": "d.json"})

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.False(t, cfg.UseHttp2)
		assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
		assert.Equal(t, []string{"a.json", "b.json"}, cfg.ResultsFiles)
		assert.Equal(t, "d.json", cfg.DetailsFile)
	})

	t.Run("invalid port", func(t *testing.T) {
		setEnv(t, map[string]string{"PORT": "70000", "RESULTS_FILES": "a.json", "DETAILS_FILE": "d.json"})
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "between 1 and 65535")
	})

	t.Run("missing results", func(t *testing.T) {
		setEnv(t, map[string]string{"DETAILS_FILE": "d.json"})
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "RESULTS_FILES")
	})
}
