// Package workflow defines the status-transition rules for the hiring
// pipeline: which actions are legal in each stage and where they lead.
// Everything here is a pure function over the status value; the store is
// never touched. Nothing moves automatically — every transition is triggered
// by an explicit recruiter action.
package workflow

import (
	"errors"
	"fmt"

	"github.com/internflow/applicant-tracker/internal/models"
)

// Action is a recruiter-triggered operation on an applicant.
type Action string

const (
	// ActionProceed moves a new applicant into screening. Gated on a
	// confirmed screening-invite draft.
	ActionProceed Action = "proceed"
	// ActionFollowUp re-contacts an applicant without changing their stage.
	// Gated on a confirmed follow-up draft.
	ActionFollowUp Action = "follow-up"
	// ActionScheduleInterview advances a completed screening to an
	// interview. Unconditional, no email gate.
	ActionScheduleInterview Action = "schedule-interview"
	// ActionReject moves the applicant to the terminal Rejected stage.
	ActionReject Action = "reject"
	// ActionDelete removes the record entirely; it sits outside the state
	// machine and is always offered alongside the non-terminal stages.
	ActionDelete Action = "delete"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Intent names the kind of email a draft-gated action needs.
type Intent string

const (
	IntentScreening Intent = "screening"
	IntentFollowUp  Intent = "followup"
)

// ActionsFor returns the legal actions for an applicant in the given stage,
// in display order. Terminal stages and unknown status values get none.
func ActionsFor(status models.ApplicationStatus) []Action {
	switch status {
	case models.StatusToBeReviewed:
		return []Action{ActionProceed, ActionDelete}
	case models.StatusScreeningSent:
		return []Action{ActionFollowUp, ActionDelete}
	case models.StatusScreeningCompleted:
		return []Action{ActionScheduleInterview, ActionReject}
	default:
		return nil
	}
}

// Apply returns the status an action leads to from the given stage.
// ActionFollowUp is a self-transition: the stage stays put and only the
// contact timestamp moves. ActionDelete removes the record rather than
// transitioning it, so it is rejected here.
func Apply(status models.ApplicationStatus, action Action) (models.ApplicationStatus, error) {
	switch {
	case status == models.StatusToBeReviewed && action == ActionProceed:
		return models.StatusScreeningSent, nil
	case status == models.StatusScreeningSent && action == ActionFollowUp:
		return models.StatusScreeningSent, nil
	case status == models.StatusScreeningCompleted && action == ActionScheduleInterview:
		return models.StatusInterviewScheduled, nil
	case status == models.StatusScreeningCompleted && action == ActionReject:
		return models.StatusRejected, nil
	default:
		return status, fmt.Errorf("%w: %q from %q", ErrInvalidTransition, action, status)
	}
}

// IsTerminal reports whether no further workflow actions exist for the
// stage. Interview Scheduled is terminal in this workflow; only a read-only
// detail view is offered beyond it.
func IsTerminal(status models.ApplicationStatus) bool {
	switch status {
	case models.StatusInterviewScheduled, models.StatusRejected, models.StatusOfferSent:
		return true
	default:
		return false
	}
}

// RequiresDraft reports whether the action is gated on a confirmed email
// draft, and which kind.
func RequiresDraft(action Action) (Intent, bool) {
	switch action {
	case ActionProceed:
		return IntentScreening, true
	case ActionFollowUp:
		return IntentFollowUp, true
	default:
		return "", false
	}
}

// IntentAllowed reports whether a draft with the given intent may be begun
// for an applicant in the given stage. This is the same gate Apply enforces,
// phrased from the orchestrator's side.
func IntentAllowed(status models.ApplicationStatus, intent Intent) bool {
	switch intent {
	case IntentScreening:
		return status == models.StatusToBeReviewed
	case IntentFollowUp:
		return status == models.StatusScreeningSent
	default:
		return false
	}
}
