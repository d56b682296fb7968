package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/attendance/handler"
	"rollcall/internal/platform/metrics"
	"rollcall/pkg/platform/middleware/metadata"
)

func testApp(checks ...readinessCheck) *app {
	return &app{
		handler: handler.New(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil))),
		httpMetrics: &metrics.Metrics{
			RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "test_duration"}, []string{"route", "method", "status"}),
			InFlight:        prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_in_flight"}),
		},
		checks: checks,
	}
}

func ok(context.Context) error { return nil }

func TestRouter_Health(t *testing.T) {
	r := newRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), testApp())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(metadata.RequestIDHeader))
}

func TestRouter_Ready(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("all checks pass", func(t *testing.T) {
		r := newRouter(logger, testApp(
			readinessCheck{name: "postgres", check: ok},
			readinessCheck{name: "oracle", check: ok},
		))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("failing check reports its name", func(t *testing.T) {
		r := newRouter(logger, testApp(
			readinessCheck{name: "postgres", check: ok},
			readinessCheck{name: "oracle", check: func(context.Context) error { return errors.New("connection refused") }},
		))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body readinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "connection refused", body.Checks["oracle"])
		assert.NotContains(t, body.Checks, "postgres")
	})
}

func TestRouter_AttendanceRequiresAuth(t *testing.T) {
	r := newRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), testApp())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance/mark", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
