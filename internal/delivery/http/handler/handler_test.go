package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/user/article-backup/internal/adapter/memory"
	"github.com/user/article-backup/internal/delivery/http/handler"
	"github.com/user/article-backup/internal/delivery/http/response"
	"github.com/user/article-backup/internal/delivery/http/router"
	"github.com/user/article-backup/internal/entity"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newServer(t *testing.T, checks map[string]handler.Pinger) (*httptest.Server, *memory.RunStatusRepoImpl) {
	t.Helper()
	repo := memory.NewRunStatusRepo()
	logger := zaptest.NewLogger(t)
	srv := httptest.NewServer(router.New(handler.NewHandler(repo, checks, logger), logger))
	t.Cleanup(srv.Close)
	return srv, repo
}

func TestGetRunStatus(t *testing.T) {
	srv, repo := newServer(t, nil)
	startedAt := time.Date(2024, 5, 1, 9, 7, 0, 0, time.UTC)
	require.NoError(t, repo.Save(context.Background(), &entity.RunStatus{
		RunID:      "run-1",
		Account:    "alice",
		State:      entity.RunRunning,
		Listed:     3,
		Written:    1,
		OutputPath: "backup/[2024-05-01_09h07m]Qiita-backup.csv",
		StartedAt:  startedAt,
	}))

	resp, err := http.Get(srv.URL + "/api/runs/run-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body response.RunStatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "run-1", body.RunID)
	assert.Equal(t, "running", body.State)
	assert.Equal(t, 3, body.Listed)
	assert.Equal(t, 1, body.Written)
	assert.True(t, startedAt.Equal(body.StartedAt))
	assert.Nil(t, body.FinishedAt)
}

func TestGetRunStatusNotFound(t *testing.T) {
	srv, _ := newServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/runs/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newServer(t, map[string]handler.Pinger{
		"redis": pingerFunc(func(ctx context.Context) error { return nil }),
	})

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"status": "ok", "redis": "healthy"}, body)
}

func TestHealthCheckDegraded(t *testing.T) {
	srv, _ := newServer(t, map[string]handler.Pinger{
		"postgres": pingerFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
	})

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newServer(t, nil)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
