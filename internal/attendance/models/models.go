// Package models holds the value types of the attendance-marking pipeline.
package models

import (
	"errors"
	"math"
	"time"

	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
)

// Errors produced by an identity oracle client. A verifier may wrap them;
// match with errors.Is.
var (
	// ErrVerificationUnavailable: the oracle could not be reached, timed out,
	// or answered with a server-side failure.
	ErrVerificationUnavailable = errors.New("verification unavailable")
	// ErrInvalidSample: the sample is not a usable face image.
	ErrInvalidSample = errors.New("invalid sample")
)

// Coordinate is a WGS-84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Validate rejects non-finite and out-of-range coordinates.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) ||
		math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return dErrors.New(dErrors.CodeValidation, "coordinates must be finite numbers")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return dErrors.New(dErrors.CodeValidation, "latitude must be within [-90, 90]")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return dErrors.New(dErrors.CodeValidation, "longitude must be within [-180, 180]")
	}
	return nil
}

// Fence is a named circular zone.
type Fence struct {
	ID           id.FenceID
	Name         string
	Center       Coordinate
	RadiusMeters float64
}

// Template is a subject's enrolled biometric reference. Only the oracle
// interprets the embedding.
type Template struct {
	SubjectID  id.SubjectID
	Embedding  []float32
	Model      string
	EnrolledAt time.Time
}

// VerificationOutcome is the oracle's verdict for one sample.
type VerificationOutcome struct {
	Match         bool
	Confidence    float64 // 0-100
	Similarity    float64
	ThresholdUsed float64
}

// Request is one mark-attendance call. It is never persisted.
type Request struct {
	SubjectID  id.SubjectID
	Coordinate Coordinate
	Sample     []byte
	Origin     string
}

// Validate checks the request before any policy step runs.
func (r Request) Validate() error {
	if r.SubjectID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "subject is required")
	}
	if err := r.Coordinate.Validate(); err != nil {
		return err
	}
	if len(r.Sample) == 0 {
		return dErrors.New(dErrors.CodeValidation, "image sample is required")
	}
	return nil
}

// Reason classifies a suspicious attempt.
type Reason string

const (
	ReasonOutsideFence      Reason = "OUTSIDE_FENCE"
	ReasonLowConfidence     Reason = "LOW_CONFIDENCE"
	ReasonVerificationError Reason = "VERIFICATION_ERROR"
)

// SuspiciousEvent is one rejected or mismatched attempt.
type SuspiciousEvent struct {
	SubjectID  *id.SubjectID
	Reason     Reason
	Origin     string
	Coordinate Coordinate
	Timestamp  time.Time
	RequestID  string
	Device     string
}

// StatusAccepted is the only status this pipeline writes.
const StatusAccepted = "accepted"

// AttendanceRecord is written once per accepted check-in.
type AttendanceRecord struct {
	ID         id.RecordID
	SubjectID  id.SubjectID
	Status     string
	Origin     string
	Coordinate Coordinate
	Confidence float64
	Timestamp  time.Time
}
