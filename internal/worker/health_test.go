package worker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(_ context.Context) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	return redis.NewStatusResult("PONG", nil)
}

type fakeApps []string

func (f fakeApps) Apps() []string {
	return f
}

func TestHealthServer(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		pingErr    error
		apps       fakeApps
		wantStatus int
		wantBody   string
	}{
		{name: "healthy", path: "/health", apps: fakeApps{"sykepenger"}, wantStatus: http.StatusOK, wantBody: "healthy"},
		{name: "healthy without templates", path: "/health", wantStatus: http.StatusOK, wantBody: "healthy"},
		{name: "unhealthy redis", path: "/health", pingErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantBody: "unhealthy"},
		{name: "ready", path: "/ready", apps: fakeApps{"sykepenger"}, wantStatus: http.StatusOK, wantBody: "ready"},
		{name: "not ready without templates", path: "/ready", wantStatus: http.StatusServiceUnavailable, wantBody: "not ready"},
		{name: "not ready without redis", path: "/ready", apps: fakeApps{"sykepenger"}, pingErr: errors.New("timeout"), wantStatus: http.StatusServiceUnavailable, wantBody: "not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthServer(0, fakePinger{err: tt.pingErr}, tt.apps, zap.NewNop())

			rec := httptest.NewRecorder()
			hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Status)
		})
	}
}

func TestHealthServer_AppCount(t *testing.T) {
	hs := NewHealthServer(0, fakePinger{}, fakeApps{"a", "b"}, zap.NewNop())

	rec := httptest.NewRecorder()
	hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2", resp.Checks["apps"])
	assert.Equal(t, "healthy", resp.Checks["redis"])
}

func TestHealthServer_StopWithoutStart(t *testing.T) {
	hs := NewHealthServer(0, fakePinger{}, fakeApps{}, zap.NewNop())
	assert.NoError(t, hs.Stop())
}
