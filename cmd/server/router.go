package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rollcall/pkg/platform/httputil"
	"rollcall/pkg/platform/middleware/metadata"
	"rollcall/pkg/platform/middleware/requesttime"
)

const readinessTimeout = 3 * time.Second

type readinessCheck struct {
	name  string
	check func(context.Context) error
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func newRouter(log *slog.Logger, a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metadata.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(a.httpMetrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", readyHandler(log, a.checks))
	r.Handle("/metrics", promhttp.Handler())

	a.handler.Register(r)
	return r
}

// readyHandler runs every check concurrently and reports 503 if any fails.
func readyHandler(log *slog.Logger, checks []readinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var (
			mu       sync.Mutex
			wg       sync.WaitGroup
			failures = map[string]string{}
		)
		for _, c := range checks {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := c.check(ctx); err != nil {
					mu.Lock()
					failures[c.name] = err.Error()
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if len(failures) > 0 {
			log.WarnContext(ctx, "readiness check failed", "failures", failures)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, readinessResponse{Status: "not_ready", Checks: failures})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, readinessResponse{Status: "ready"})
	}
}
