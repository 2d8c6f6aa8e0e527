package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/spaceweather-watch/internal/adapter/http"
	"github.com/couchcryptid/spaceweather-watch/internal/domain"
	"github.com/couchcryptid/spaceweather-watch/internal/watch"
)

type mockReporter struct {
	err    error
	status *watch.Status
}

func (m *mockReporter) CheckReadiness(_ context.Context) error { return m.err }

func (m *mockReporter) Status() *watch.Status { return m.status }

func newTestServer(reporter *mockReporter) *httpadapter.Server {
	return httpadapter.NewServer(":0", reporter, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockReporter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockReporter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockReporter{err: fmt.Errorf("not ready yet")})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestStatuszReturnsLatestAssessment(t *testing.T) {
	status := &watch.Status{
		Reading:    domain.Reading{KpMax24h: 6.33, IsDaylight: true},
		Assessment: domain.RiskAssessment{Index: 24.8, Category: domain.CategoryElevated, ShortFuse: true},
		SampledAt:  time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
	}
	srv := newTestServer(&mockReporter{status: status})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/statusz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var decoded watch.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, 24.8, decoded.Assessment.Index)
	assert.Equal(t, domain.CategoryElevated, decoded.Assessment.Category)
	assert.True(t, decoded.Assessment.ShortFuse)
}

func TestStatuszBeforeFirstSample(t *testing.T) {
	srv := newTestServer(&mockReporter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/statusz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockReporter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
