package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/platform/httputil"
	"rollcall/pkg/platform/middleware/auth"
	"rollcall/pkg/requestcontext"
)

// DefaultMaxSampleBytes bounds a multipart request body.
const DefaultMaxSampleBytes int64 = 10 << 20

// multipart parts beyond this size spill to temp files.
const maxMemoryBytes = 4 << 20

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service is the attendance pipeline as seen by the transport.
type Service interface {
	Decide(ctx context.Context, req models.Request) (models.Decision, error)
	Enroll(ctx context.Context, subjectID id.SubjectID, sample []byte) (*models.Template, error)
}

// Handler serves the attendance endpoints.
type Handler struct {
	service        Service
	validator      auth.SubjectValidator
	logger         *slog.Logger
	maxSampleBytes int64
	rateLimit      func(http.Handler) http.Handler
}

type Option func(*Handler)

func WithMaxSampleBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxSampleBytes = n
		}
	}
}

// WithRateLimit runs mw on the attendance routes after authentication.
func WithRateLimit(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.rateLimit = mw
	}
}

func New(service Service, validator auth.SubjectValidator, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:        service,
		validator:      validator,
		logger:         logger,
		maxSampleBytes: DefaultMaxSampleBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the attendance routes behind bearer authentication.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.validator, h.logger))
		if h.rateLimit != nil {
			r.Use(h.rateLimit)
		}
		r.Post("/attendance/mark", h.handleMark)
		r.Post("/attendance/enroll", h.handleEnroll)
	})
}

// markResponse never carries the similarity score.
type markResponse struct {
	Outcome    string   `json:"outcome"`
	RecordID   string   `json:"record_id,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Message    string   `json:"message,omitempty"`
}

type enrollResponse struct {
	SubjectID  string    `json:"subject_id"`
	Model      string    `json:"model"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sample, err := h.readSample(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid mark attendance request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	coord, err := parseCoordinate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	decision, err := h.service.Decide(ctx, models.Request{
		SubjectID:  requestcontext.SubjectID(ctx),
		Coordinate: coord,
		Sample:     sample,
		Origin:     requestcontext.ClientIP(ctx),
	})
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "mark attendance failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	status, resp := decisionResponse(decision)
	httputil.WriteJSON(w, status, resp)
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sample, err := h.readSample(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid enroll request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	tmpl, err := h.service.Enroll(ctx, requestcontext.SubjectID(ctx), sample)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "enroll failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, enrollResponse{
		SubjectID:  tmpl.SubjectID.String(),
		Model:      tmpl.Model,
		EnrolledAt: tmpl.EnrolledAt,
	})
}

// decisionResponse maps a terminal decision to its status code and body.
func decisionResponse(d models.Decision) (int, markResponse) {
	resp := markResponse{Outcome: string(d.Outcome())}
	switch d := d.(type) {
	case models.Accepted:
		resp.RecordID = d.RecordID.String()
		resp.Confidence = &d.Confidence
		return http.StatusCreated, resp
	case models.RejectedOutsideFence:
		resp.Message = "location is outside every permitted zone"
		return http.StatusForbidden, resp
	case models.RejectedNotEnrolled:
		resp.Message = "subject has no enrolled face template"
		return http.StatusPreconditionFailed, resp
	case models.RejectedLowConfidence:
		resp.Confidence = &d.Confidence
		resp.Message = "face did not match the enrolled template"
		return http.StatusForbidden, resp
	case models.RejectedVerificationError:
		resp.Message = "identity could not be verified, try again later"
		return http.StatusServiceUnavailable, resp
	default:
		resp.Message = "unknown decision"
		return http.StatusInternalServerError, resp
	}
}

// readSample bounds the body, parses the multipart form and returns the
// image part.
func (h *Handler) readSample(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSampleBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, dErrors.New(dErrors.CodeTooLarge, "request body too large")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart form")
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "image sample is required")
	}
	defer file.Close()

	sample, err := io.ReadAll(file)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read image")
	}
	return sample, nil
}

func parseCoordinate(r *http.Request) (models.Coordinate, error) {
	lat, err := parseFloatField(r, "latitude")
	if err != nil {
		return models.Coordinate{}, err
	}
	lon, err := parseFloatField(r, "longitude")
	if err != nil {
		return models.Coordinate{}, err
	}
	return models.Coordinate{Latitude: lat, Longitude: lon}, nil
}

func parseFloatField(r *http.Request, field string) (float64, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, field+" must be a number")
	}
	return v, nil
}
