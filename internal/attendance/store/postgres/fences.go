package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
)

// FenceRegistry reads active fences from the fences table.
type FenceRegistry struct {
	db *sql.DB
}

func NewFenceRegistry(db *sql.DB) *FenceRegistry {
	return &FenceRegistry{db: db}
}

func (r *FenceRegistry) Fences(ctx context.Context) ([]models.Fence, error) {
	query := `
		SELECT id, name, latitude, longitude, radius_meters
		FROM fences
		WHERE active
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query fences: %w", err)
	}
	defer rows.Close()

	var fences []models.Fence
	for rows.Next() {
		var (
			fence   models.Fence
			fenceID uuid.UUID
		)
		if err := rows.Scan(&fenceID, &fence.Name, &fence.Center.Latitude, &fence.Center.Longitude, &fence.RadiusMeters); err != nil {
			return nil, fmt.Errorf("scan fence: %w", err)
		}
		fence.ID = id.FenceID(fenceID)
		fences = append(fences, fence)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fences: %w", err)
	}
	return fences, nil
}

// Add inserts an active fence. Used by ops tooling and tests; the decision
// path only reads.
func (r *FenceRegistry) Add(ctx context.Context, fence models.Fence) (models.Fence, error) {
	if fence.ID.IsNil() {
		fence.ID = id.NewFenceID()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fences (id, name, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.UUID(fence.ID), fence.Name, fence.Center.Latitude, fence.Center.Longitude, fence.RadiusMeters)
	if err != nil {
		return models.Fence{}, fmt.Errorf("insert fence: %w", err)
	}
	return fence, nil
}
