package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	"rollcall/pkg/platform/sentinel"
)

// EmbeddingDim is the width of the face_templates.embedding column.
const EmbeddingDim = 512

// TemplateStore keeps enrolled embeddings in a pgvector column.
type TemplateStore struct {
	db *sql.DB
}

func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

func (s *TemplateStore) GetTemplate(ctx context.Context, subjectID id.SubjectID) (*models.Template, error) {
	var (
		tmpl models.Template
		vec  pgvector.Vector
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT embedding, model, enrolled_at
		FROM face_templates
		WHERE subject_id = $1
	`, uuid.UUID(subjectID)).Scan(&vec, &tmpl.Model, &tmpl.EnrolledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	tmpl.SubjectID = subjectID
	tmpl.Embedding = vec.Slice()
	return &tmpl, nil
}

// SaveTemplate upserts, so re-enrollment replaces the previous template.
func (s *TemplateStore) SaveTemplate(ctx context.Context, tmpl models.Template) error {
	if len(tmpl.Embedding) != EmbeddingDim {
		return fmt.Errorf("save template: embedding has %d dimensions, want %d", len(tmpl.Embedding), EmbeddingDim)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO face_templates (subject_id, embedding, model, enrolled_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subject_id) DO UPDATE
		SET embedding = EXCLUDED.embedding,
		    model = EXCLUDED.model,
		    enrolled_at = EXCLUDED.enrolled_at
	`, uuid.UUID(tmpl.SubjectID), pgvector.NewVector(tmpl.Embedding), tmpl.Model, tmpl.EnrolledAt)
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}
