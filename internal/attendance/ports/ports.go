// Package ports declares the collaborators the attendance service depends on.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
)

// LocationRegistry supplies the configured fences. Read-only.
type LocationRegistry interface {
	Fences(ctx context.Context) ([]models.Fence, error)
}

// EnrollmentStore holds enrolled templates. GetTemplate returns
// sentinel.ErrNotFound when the subject has never enrolled.
type EnrollmentStore interface {
	GetTemplate(ctx context.Context, subjectID id.SubjectID) (*models.Template, error)
	SaveTemplate(ctx context.Context, tmpl models.Template) error
}

// IdentityVerifier compares a live sample with a stored template. Errors wrap
// models.ErrVerificationUnavailable or models.ErrInvalidSample.
type IdentityVerifier interface {
	Verify(ctx context.Context, sample []byte, tmpl models.Template) (models.VerificationOutcome, error)
}

// TemplateExtractor turns an enrollment sample into a template.
type TemplateExtractor interface {
	Enroll(ctx context.Context, sample []byte) (models.Template, error)
}

// AttendanceStore persists accepted check-ins.
type AttendanceStore interface {
	Create(ctx context.Context, record models.AttendanceRecord) (id.RecordID, error)
}

// SuspiciousRecorder durably appends one event per call.
type SuspiciousRecorder interface {
	Record(ctx context.Context, event models.SuspiciousEvent) error
}
