package audit

import (
	"context"
	"time"
)

// SecurityEvent captures security-relevant actions for SIEM and alerting.
// Each event is a distinct fact; stores never deduplicate.
type SecurityEvent struct {
	Timestamp time.Time // When the event occurred
	Subject   string    // Entity involved (subject ID); empty when unknown
	Action    string    // Security action (e.g., "attendance_rejected")
	Reason    string    // Why this happened (e.g., "OUTSIDE_FENCE")
	IP        string    // Client IP address (critical for security forensics)
	RequestID string    // Correlation ID
	Device    string    // Browser and OS parsed from the User-Agent
	Severity  Severity  // "info", "warning", "critical" for SIEM routing
	// Latitude and Longitude are the claimed position, when relevant.
	Latitude  *float64
	Longitude *float64
}

// Severity levels for security events.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// SecurityStore durably appends security events. Append returns only after
// the event is committed by the backend.
type SecurityStore interface {
	AppendSecurity(ctx context.Context, event SecurityEvent) error
}
