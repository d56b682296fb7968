package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/platform/httputil"
	"rollcall/pkg/requestcontext"
)

var rejections = promauto.NewCounter(prometheus.CounterOpts{
	Name: "rollcall_ratelimit_rejections_total",
	Help: "Mark attempts rejected by the per-subject rate limiter",
})

// Limiter is per-subject HTTP middleware. It must run after authentication.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	logger *slog.Logger
}

func NewLimiter(store Store, limit int, window time.Duration, logger *slog.Logger) *Limiter {
	return &Limiter{store: store, limit: limit, window: window, logger: logger}
}

// PerSubject rejects with 429 once the subject exhausts its window. Store
// failures let the request through.
func (l *Limiter) PerSubject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		subject := requestcontext.SubjectID(ctx)
		if subject.IsNil() || l.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		result, err := l.store.Allow(ctx, subjectKey(subject.String()), l.limit, l.window)
		if err != nil {
			l.logger.ErrorContext(ctx, "failed to check subject rate limit",
				"error", err,
				"subject_id", subject,
				"request_id", requestcontext.RequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			rejections.Inc()
			l.logger.WarnContext(ctx, "mark attempts rate limited",
				"subject_id", subject,
				"request_id", requestcontext.RequestID(ctx),
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter(time.Now())))
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many attendance attempts, try again later"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
