package domain

import (
	"github.com/google/uuid"

	dErrors "rollcall/pkg/domain-errors"
)

// Typed identifiers. Each wraps a UUID so that a subject ID can never be
// passed where a fence or record ID is expected.
type (
	SubjectID uuid.UUID
	FenceID   uuid.UUID
	RecordID  uuid.UUID
	EventID   uuid.UUID
)

func (id SubjectID) String() string { return uuid.UUID(id).String() }
func (id SubjectID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id FenceID) String() string { return uuid.UUID(id).String() }
func (id FenceID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id RecordID) String() string { return uuid.UUID(id).String() }
func (id RecordID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id EventID) String() string { return uuid.UUID(id).String() }
func (id EventID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewFenceID returns a fresh random fence ID.
func NewFenceID() FenceID { return FenceID(uuid.New()) }

// NewRecordID returns a fresh random record ID.
func NewRecordID() RecordID { return RecordID(uuid.New()) }

// NewEventID returns a fresh random event ID.
func NewEventID() EventID { return EventID(uuid.New()) }

// ParseSubjectID parses a subject ID at a trust boundary.
func ParseSubjectID(s string) (SubjectID, error) {
	u, err := parseUUID(s, "subject_id")
	return SubjectID(u), err
}

// ParseFenceID parses a fence ID at a trust boundary.
func ParseFenceID(s string) (FenceID, error) {
	u, err := parseUUID(s, "fence_id")
	return FenceID(u), err
}

// ParseRecordID parses a record ID at a trust boundary.
func ParseRecordID(s string) (RecordID, error) {
	u, err := parseUUID(s, "record_id")
	return RecordID(u), err
}

// parseUUID rejects empty, malformed, and nil UUIDs.
func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be nil")
	}
	return u, nil
}
