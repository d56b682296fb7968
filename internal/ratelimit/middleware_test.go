package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "rollcall/pkg/domain"
	"rollcall/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (Result, error) {
	return Result{}, errors.New("redis down")
}

func serveAs(h http.Handler, subject id.SubjectID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/attendance/mark", nil)
	req = req.WithContext(requestcontext.WithSubjectID(req.Context(), subject))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLimiter_PerSubject(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })

	t.Run("rejects once the window is exhausted", func(t *testing.T) {
		h := NewLimiter(NewInMemoryStore(), 2, time.Minute, logger).PerSubject(next)
		subject := id.SubjectID(uuid.New())

		assert.Equal(t, http.StatusCreated, serveAs(h, subject).Code)
		rec := serveAs(h, subject)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

		rec = serveAs(h, subject)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))

		assert.Equal(t, http.StatusCreated, serveAs(h, id.SubjectID(uuid.New())).Code)
	})

	t.Run("store failure lets the request through", func(t *testing.T) {
		h := NewLimiter(failingStore{}, 1, time.Minute, logger).PerSubject(next)
		assert.Equal(t, http.StatusCreated, serveAs(h, id.SubjectID(uuid.New())).Code)
	})

	t.Run("zero limit disables limiting", func(t *testing.T) {
		h := NewLimiter(NewInMemoryStore(), 0, time.Minute, logger).PerSubject(next)
		subject := id.SubjectID(uuid.New())
		for range 5 {
			assert.Equal(t, http.StatusCreated, serveAs(h, subject).Code)
		}
	})
}
