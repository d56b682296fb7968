package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	audit "rollcall/pkg/platform/audit"
)

// Store appends security events to the audit_security table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// AppendSecurity inserts one row per call under a fresh ID, so retried
// attempts are stored as separate facts.
func (s *Store) AppendSecurity(ctx context.Context, event audit.SecurityEvent) error {
	query := `
		INSERT INTO audit_security (
			id, timestamp, subject, action, reason,
			ip, request_id, severity, latitude, longitude, device
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		event.Timestamp,
		event.Subject,
		event.Action,
		event.Reason,
		event.IP,
		event.RequestID,
		string(event.Severity),
		event.Latitude,
		event.Longitude,
		event.Device,
	)
	if err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}

// ListSecurityBySubject returns a subject's events, newest first. Ops and
// tests only.
func (s *Store) ListSecurityBySubject(ctx context.Context, subject string) ([]audit.SecurityEvent, error) {
	query := `
		SELECT timestamp, subject, action, reason, ip, request_id, severity, latitude, longitude, device
		FROM audit_security
		WHERE subject = $1
		ORDER BY timestamp DESC
	`
	rows, err := s.db.QueryContext(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("query security events: %w", err)
	}
	defer rows.Close()

	var events []audit.SecurityEvent
	for rows.Next() {
		var (
			event    audit.SecurityEvent
			severity string
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(
			&event.Timestamp,
			&event.Subject,
			&event.Action,
			&event.Reason,
			&event.IP,
			&event.RequestID,
			&severity,
			&lat,
			&lng,
			&event.Device,
		); err != nil {
			return nil, fmt.Errorf("scan security event: %w", err)
		}
		event.Severity = audit.Severity(severity)
		if lat.Valid {
			event.Latitude = &lat.Float64
		}
		if lng.Valid {
			event.Longitude = &lng.Float64
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate security events: %w", err)
	}
	return events, nil
}
