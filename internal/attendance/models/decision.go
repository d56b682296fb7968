package models

import id "rollcall/pkg/domain"

// Outcome names a terminal decision state.
type Outcome string

const (
	OutcomeAccepted          Outcome = "accepted"
	OutcomeOutsideFence      Outcome = "outside_fence"
	OutcomeNotEnrolled       Outcome = "not_enrolled"
	OutcomeLowConfidence     Outcome = "low_confidence"
	OutcomeVerificationError Outcome = "verification_error"
)

// Decision is the result of one mark-attendance call. The set of
// implementations is closed; switch on the concrete type:
//
//	switch d := decision.(type) {
//	case models.Accepted:
//	case models.RejectedOutsideFence:
//	case models.RejectedNotEnrolled:
//	case models.RejectedLowConfidence:
//	case models.RejectedVerificationError:
//	}
type Decision interface {
	Outcome() Outcome
	decision()
}

type Accepted struct {
	Confidence float64
	RecordID   id.RecordID
}

type RejectedOutsideFence struct{}

type RejectedNotEnrolled struct{}

type RejectedLowConfidence struct {
	Confidence float64
}

type RejectedVerificationError struct {
	Cause error
}

func (Accepted) Outcome() Outcome                  { return OutcomeAccepted }
func (RejectedOutsideFence) Outcome() Outcome      { return OutcomeOutsideFence }
func (RejectedNotEnrolled) Outcome() Outcome       { return OutcomeNotEnrolled }
func (RejectedLowConfidence) Outcome() Outcome     { return OutcomeLowConfidence }
func (RejectedVerificationError) Outcome() Outcome { return OutcomeVerificationError }

func (Accepted) decision()                  {}
func (RejectedOutsideFence) decision()      {}
func (RejectedNotEnrolled) decision()       {}
func (RejectedLowConfidence) decision()     {}
func (RejectedVerificationError) decision() {}
