// Package service decides whether an attendance check-in is accepted.
//
// Steps run in a fixed order and stop at the first terminal state:
// enrollment precondition, geofence, identity verification, commit. Every
// terminal state other than not-enrolled writes exactly one record: an
// attendance record on acceptance, a suspicious event otherwise.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rollcall/internal/attendance/geofence"
	"rollcall/internal/attendance/metrics"
	"rollcall/internal/attendance/models"
	"rollcall/internal/attendance/ports"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/platform/sentinel"
	"rollcall/pkg/requestcontext"
)

// ErrAttendanceNotRecorded is wrapped into the error returned when an
// accepted check-in could not be persisted.
var ErrAttendanceNotRecorded = errors.New("attendance not recorded")

const defaultWriteTimeout = 5 * time.Second

type Service struct {
	registry    ports.LocationRegistry
	enrollments ports.EnrollmentStore
	verifier    ports.IdentityVerifier
	attendance  ports.AttendanceStore
	recorder    ports.SuspiciousRecorder
	extractor   ports.TemplateExtractor

	metrics      *metrics.Metrics
	logger       *slog.Logger
	tracer       trace.Tracer
	writeTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithWriteTimeout bounds each durable write. Writes are detached from the
// caller's cancellation, so this is their only deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithTemplateExtractor enables Enroll.
func WithTemplateExtractor(extractor ports.TemplateExtractor) Option {
	return func(s *Service) {
		s.extractor = extractor
	}
}

func New(
	registry ports.LocationRegistry,
	enrollments ports.EnrollmentStore,
	verifier ports.IdentityVerifier,
	attendance ports.AttendanceStore,
	recorder ports.SuspiciousRecorder,
	opts ...Option,
) (*Service, error) {
	switch {
	case registry == nil:
		return nil, fmt.Errorf("location registry is required")
	case enrollments == nil:
		return nil, fmt.Errorf("enrollment store is required")
	case verifier == nil:
		return nil, fmt.Errorf("identity verifier is required")
	case attendance == nil:
		return nil, fmt.Errorf("attendance store is required")
	case recorder == nil:
		return nil, fmt.Errorf("suspicious recorder is required")
	}

	svc := &Service{
		registry:     registry,
		enrollments:  enrollments,
		verifier:     verifier,
		attendance:   attendance,
		recorder:     recorder,
		logger:       slog.Default(),
		tracer:       otel.Tracer("rollcall/attendance"),
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// outcomeError labels decisions that ended in an infrastructure failure.
const outcomeError = "error"

// Decide runs the pipeline for one check-in. Policy rejections are returned
// as a Decision with a nil error. A non-nil error means the input was invalid
// (validation code, nothing written) or infrastructure failed before a
// decision could be made durable.
func (s *Service) Decide(ctx context.Context, req models.Request) (models.Decision, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "attendance.Decide",
		trace.WithAttributes(attribute.String("subject_id", req.SubjectID.String())),
	)
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	decision, err := s.decide(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decision failed")
		s.metrics.IncrementOutcome(outcomeError)
		s.metrics.ObserveDecideLatency(time.Since(start))
		s.logger.ErrorContext(ctx, "attendance decision failed",
			"subject_id", req.SubjectID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, err
	}

	outcome := decision.Outcome()
	elapsed := time.Since(start)
	span.SetAttributes(attribute.String("outcome", string(outcome)))
	s.metrics.IncrementOutcome(string(outcome))
	s.metrics.ObserveDecideLatency(elapsed)
	s.logger.InfoContext(ctx, "attendance decision",
		"subject_id", req.SubjectID,
		"outcome", outcome,
		"request_id", requestcontext.RequestID(ctx),
		"duration_ms", elapsed.Milliseconds(),
	)
	return decision, nil
}

func (s *Service) decide(ctx context.Context, req models.Request) (models.Decision, error) {
	tmpl, err := s.enrollments.GetTemplate(ctx, req.SubjectID)
	if errors.Is(err, sentinel.ErrNotFound) || (err == nil && tmpl == nil) {
		// A configuration gap, not an attack signal: nothing is recorded.
		return models.RejectedNotEnrolled{}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load enrollment")
	}

	fences, err := s.registry.Fences(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load fences")
	}
	s.metrics.ObserveFenceCount(len(fences))
	if len(fences) == 0 {
		s.logger.DebugContext(ctx, "no fences configured, location check skipped",
			"request_id", requestcontext.RequestID(ctx),
		)
	} else if !geofence.InsideAnyFence(req.Coordinate, fences) {
		s.recordSuspicious(ctx, req, models.ReasonOutsideFence)
		return models.RejectedOutsideFence{}, nil
	}

	outcome, err := s.verifier.Verify(ctx, req.Sample, *tmpl)
	if err != nil {
		s.logger.WarnContext(ctx, "identity verification failed",
			"subject_id", req.SubjectID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		s.recordSuspicious(ctx, req, models.ReasonVerificationError)
		return models.RejectedVerificationError{Cause: err}, nil
	}
	if !outcome.Match {
		s.recordSuspicious(ctx, req, models.ReasonLowConfidence)
		return models.RejectedLowConfidence{Confidence: outcome.Confidence}, nil
	}

	recordID, err := s.commit(ctx, models.AttendanceRecord{
		SubjectID:  req.SubjectID,
		Status:     models.StatusAccepted,
		Origin:     req.Origin,
		Coordinate: req.Coordinate,
		Confidence: outcome.Confidence,
		Timestamp:  requestcontext.Now(ctx),
	})
	if err != nil {
		return nil, dErrors.Wrap(
			fmt.Errorf("%w: %w", ErrAttendanceNotRecorded, err),
			dErrors.CodeInternal,
			"attendance was not recorded",
		)
	}
	return models.Accepted{Confidence: outcome.Confidence, RecordID: recordID}, nil
}

func (s *Service) commit(ctx context.Context, record models.AttendanceRecord) (id.RecordID, error) {
	writeCtx, cancel := s.writeContext(ctx)
	defer cancel()
	return s.attendance.Create(writeCtx, record)
}

// recordSuspicious appends the event. A failed append is logged and counted;
// the rejection it describes stands regardless.
func (s *Service) recordSuspicious(ctx context.Context, req models.Request, reason models.Reason) {
	subjectID := req.SubjectID
	event := models.SuspiciousEvent{
		SubjectID:  &subjectID,
		Reason:     reason,
		Origin:     req.Origin,
		Coordinate: req.Coordinate,
		Timestamp:  requestcontext.Now(ctx),
		RequestID:  requestcontext.RequestID(ctx),
		Device:     requestcontext.Device(ctx),
	}

	writeCtx, cancel := s.writeContext(ctx)
	defer cancel()
	if err := s.recorder.Record(writeCtx, event); err != nil {
		s.metrics.IncrementRecorderFailure(string(reason))
		s.logger.ErrorContext(ctx, "failed to record suspicious activity",
			"subject_id", req.SubjectID,
			"reason", reason,
			"origin", req.Origin,
			"device", event.Device,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}

func (s *Service) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
}

// Enroll extracts a template from sample and stores it for subjectID,
// replacing any previous enrollment.
func (s *Service) Enroll(ctx context.Context, subjectID id.SubjectID, sample []byte) (*models.Template, error) {
	if s.extractor == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "enrollment is not configured")
	}
	if subjectID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "subject is required")
	}
	if len(sample) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "image sample is required")
	}

	tmpl, err := s.extractor.Enroll(ctx, sample)
	switch {
	case errors.Is(err, models.ErrInvalidSample):
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "image does not contain a single usable face")
	case errors.Is(err, models.ErrVerificationUnavailable):
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "identity service unavailable, try again later")
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to extract template")
	}
	tmpl.SubjectID = subjectID
	tmpl.EnrolledAt = requestcontext.Now(ctx)

	writeCtx, cancel := s.writeContext(ctx)
	defer cancel()
	if err := s.enrollments.SaveTemplate(writeCtx, tmpl); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save template")
	}

	s.logger.InfoContext(ctx, "subject enrolled",
		"subject_id", subjectID,
		"model", tmpl.Model,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &tmpl, nil
}
