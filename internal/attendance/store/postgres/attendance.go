package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
)

// AttendanceStore inserts accepted check-ins into attendance_records.
type AttendanceStore struct {
	db *sql.DB
}

func NewAttendanceStore(db *sql.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

func (s *AttendanceStore) Create(ctx context.Context, record models.AttendanceRecord) (id.RecordID, error) {
	var recordID uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (
			id, subject_id, status, origin, latitude, longitude, confidence, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		uuid.New(),
		uuid.UUID(record.SubjectID),
		record.Status,
		record.Origin,
		record.Coordinate.Latitude,
		record.Coordinate.Longitude,
		record.Confidence,
		record.Timestamp,
	).Scan(&recordID)
	if err != nil {
		return id.RecordID{}, fmt.Errorf("insert attendance record: %w", err)
	}
	return id.RecordID(recordID), nil
}

// ListBySubject returns a subject's records, newest first.
func (s *AttendanceStore) ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, origin, latitude, longitude, confidence, timestamp
		FROM attendance_records
		WHERE subject_id = $1
		ORDER BY timestamp DESC
	`, uuid.UUID(subjectID))
	if err != nil {
		return nil, fmt.Errorf("query attendance records: %w", err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		var (
			record   models.AttendanceRecord
			recordID uuid.UUID
		)
		if err := rows.Scan(
			&recordID,
			&record.Status,
			&record.Origin,
			&record.Coordinate.Latitude,
			&record.Coordinate.Longitude,
			&record.Confidence,
			&record.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		record.ID = id.RecordID(recordID)
		record.SubjectID = subjectID
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance records: %w", err)
	}
	return records, nil
}
