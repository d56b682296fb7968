package adapters

import (
	"context"
	"errors"
	"fmt"

	"rollcall/internal/attendance/models"
	"rollcall/internal/attendance/ports"
	audit "rollcall/pkg/platform/audit"
)

// ErrRecorderUnavailable is wrapped into every failed Record call.
var ErrRecorderUnavailable = errors.New("suspicious activity recorder unavailable")

// ActionAttendanceRejected is the security action for every suspicious attempt.
const ActionAttendanceRejected = "attendance_rejected"

// RecorderAdapter implements ports.SuspiciousRecorder on top of a platform
// security audit store (Postgres, Kafka or memory).
type RecorderAdapter struct {
	store audit.SecurityStore
}

func NewRecorderAdapter(store audit.SecurityStore) ports.SuspiciousRecorder {
	return &RecorderAdapter{store: store}
}

func (a *RecorderAdapter) Record(ctx context.Context, event models.SuspiciousEvent) error {
	lat, lng := event.Coordinate.Latitude, event.Coordinate.Longitude
	securityEvent := audit.SecurityEvent{
		Timestamp: event.Timestamp,
		Action:    ActionAttendanceRejected,
		Reason:    string(event.Reason),
		IP:        event.Origin,
		RequestID: event.RequestID,
		Device:    event.Device,
		Severity:  severityFor(event.Reason),
		Latitude:  &lat,
		Longitude: &lng,
	}
	if event.SubjectID != nil {
		securityEvent.Subject = event.SubjectID.String()
	}

	if err := a.store.AppendSecurity(ctx, securityEvent); err != nil {
		return fmt.Errorf("%w: %w", ErrRecorderUnavailable, err)
	}
	return nil
}

// severityFor: location and identity mismatches are likely proxy attempts;
// verification errors are mostly infrastructure noise.
func severityFor(reason models.Reason) audit.Severity {
	switch reason {
	case models.ReasonOutsideFence, models.ReasonLowConfidence:
		return audit.SeverityWarning
	default:
		return audit.SeverityInfo
	}
}
