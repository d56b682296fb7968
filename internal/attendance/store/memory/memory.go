// Package memory holds in-process attendance collaborators for dev mode and
// tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	"rollcall/pkg/platform/sentinel"
)

// FenceRegistry is a mutable fence set.
type FenceRegistry struct {
	mu     sync.RWMutex
	fences []models.Fence
}

func NewFenceRegistry(fences ...models.Fence) *FenceRegistry {
	return &FenceRegistry{fences: slices.Clone(fences)}
}

func (r *FenceRegistry) Fences(_ context.Context) ([]models.Fence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.fences), nil
}

// Add appends a fence, minting an ID when missing.
func (r *FenceRegistry) Add(fence models.Fence) models.Fence {
	if fence.ID.IsNil() {
		fence.ID = id.NewFenceID()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fences = append(r.fences, fence)
	return fence
}

// TemplateStore keeps one template per subject.
type TemplateStore struct {
	mu        sync.RWMutex
	templates map[id.SubjectID]models.Template
}

func NewTemplateStore() *TemplateStore {
	return &TemplateStore{templates: make(map[id.SubjectID]models.Template)}
}

func (s *TemplateStore) GetTemplate(_ context.Context, subjectID id.SubjectID) (*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.templates[subjectID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	tmpl.Embedding = slices.Clone(tmpl.Embedding)
	return &tmpl, nil
}

func (s *TemplateStore) SaveTemplate(_ context.Context, tmpl models.Template) error {
	tmpl.Embedding = slices.Clone(tmpl.Embedding)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tmpl.SubjectID] = tmpl
	return nil
}

// AttendanceStore appends accepted records.
type AttendanceStore struct {
	mu      sync.RWMutex
	records []models.AttendanceRecord
}

func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{}
}

func (s *AttendanceStore) Create(_ context.Context, record models.AttendanceRecord) (id.RecordID, error) {
	record.ID = id.NewRecordID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return record.ID, nil
}

// ListBySubject returns a subject's records in insertion order.
func (s *AttendanceStore) ListBySubject(_ context.Context, subjectID id.SubjectID) ([]models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.AttendanceRecord
	for _, r := range s.records {
		if r.SubjectID == subjectID {
			out = append(out, r)
		}
	}
	return out, nil
}
