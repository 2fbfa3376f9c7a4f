package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/internflow/applicant-tracker/internal/models"
	"github.com/internflow/applicant-tracker/internal/store"
	"github.com/internflow/applicant-tracker/internal/workflow"
)

var (
	ErrUnknownApplicant = errors.New("applicant not found")
	ErrIntentNotAllowed = errors.New("intent not allowed for applicant's current status")
	ErrNoPendingDraft   = errors.New("no pending draft")
)

// Fallback bodies shown when the generator fails or returns nothing. The
// flow never surfaces the raw error to the recruiter; they just get the
// generic text instead of a personalized one.
const (
	FallbackScreeningBody = "Dear Applicant,\n\nThank you for applying. Please complete the screening assessment at the link provided.\n\nBest,\nRecruiting Team"
	FallbackFollowUpBody  = "Dear Applicant,\n\nThis is a follow-up regarding your application.\n\nBest,\nRecruiting Team"
)

// Draft is a pending email body awaiting the recruiter's confirm/cancel
// decision. Nothing has been committed to the store while a draft is
// pending.
type Draft struct {
	ApplicantID   string          `json:"applicant_id"`
	ApplicantName string          `json:"applicant_name"`
	Intent        workflow.Intent `json:"intent"`
	Body          string          `json:"body"`
	Fallback      bool            `json:"fallback"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DraftService coordinates the two-phase "draft, then confirm-send" flow
// that gates the email-backed transitions. It holds at most one pending
// draft at a time; beginning a new one discards whatever was there. No
// actual message transport happens — "send" is the store mutation alone.
type DraftService struct {
	store *store.ApplicantStore
	llm   EmailGenerator
	now   func() time.Time

	mu      sync.Mutex
	current *Draft
}

// NewDraftService wires the orchestrator. A nil generator is tolerated
// (e.g. no API key configured): every draft then comes out as the fallback
// body and the flow keeps working.
func NewDraftService(s *store.ApplicantStore, llm EmailGenerator) *DraftService {
	return &DraftService{
		store: s,
		llm:   llm,
		now:   time.Now,
	}
}

// Begin reads the applicant, asks the generator for a body, and installs
// the result as the pending draft, displacing any unconfirmed prior one.
// The store is not locked while the generator call is in flight. Generator
// failure or empty output is recovered locally with the fixed fallback
// body; only unknown applicants and disallowed intents are errors.
func (d *DraftService) Begin(ctx context.Context, applicantID string, intent workflow.Intent) (Draft, error) {
	applicant, ok := d.store.Get(applicantID)
	if !ok {
		return Draft{}, ErrUnknownApplicant
	}
	if !workflow.IntentAllowed(applicant.Status, intent) {
		return Draft{}, ErrIntentNotAllowed
	}

	body, err := d.generate(ctx, applicant, intent)
	fallback := false
	if err != nil || body == "" {
		if err != nil {
			log.Printf("[Draft: %s] generation failed, using fallback: %v", applicant.Name, err)
		} else {
			log.Printf("[Draft: %s] generator returned empty body, using fallback", applicant.Name)
		}
		body = fallbackBody(intent)
		fallback = true
	}

	draft := Draft{
		ApplicantID:   applicant.ID,
		ApplicantName: applicant.Name,
		Intent:        intent,
		Body:          body,
		Fallback:      fallback,
		CreatedAt:     d.now(),
	}

	d.mu.Lock()
	d.current = &draft
	d.mu.Unlock()

	return draft, nil
}

// Current returns the pending draft, if any.
func (d *DraftService) Current() (Draft, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return Draft{}, false
	}
	return *d.current, true
}

// Confirm commits exactly one status update for the pending draft and
// clears it. A screening draft moves the applicant to Screening Sent; a
// follow-up leaves the stage untouched. Both stamp lastContacted to now.
func (d *DraftService) Confirm() (models.Applicant, error) {
	d.mu.Lock()
	draft := d.current
	d.current = nil
	d.mu.Unlock()

	if draft == nil {
		return models.Applicant{}, ErrNoPendingDraft
	}

	applicant, ok := d.store.Get(draft.ApplicantID)
	if !ok {
		// Deleted while the draft sat open. Nothing to commit.
		return models.Applicant{}, ErrUnknownApplicant
	}

	sentAt := d.now()
	next := applicant.Status
	if draft.Intent == workflow.IntentScreening {
		next = models.StatusScreeningSent
	}
	d.store.UpdateStatus(draft.ApplicantID, next, &store.Extra{LastContacted: &sentAt})

	updated, _ := d.store.Get(draft.ApplicantID)
	log.Printf("[Draft: %s] confirmed %s email, status now %q", draft.ApplicantName, draft.Intent, updated.Status)
	return updated, nil
}

// Cancel discards the pending draft without touching the store. Safe to
// call when nothing is pending.
func (d *DraftService) Cancel() {
	d.mu.Lock()
	d.current = nil
	d.mu.Unlock()
}

func (d *DraftService) generate(ctx context.Context, a models.Applicant, intent workflow.Intent) (string, error) {
	if d.llm == nil {
		return "", errors.New("no email generator configured")
	}
	if intent == workflow.IntentFollowUp {
		return d.llm.GenerateFollowUpEmail(ctx, a.Name, a.Role, string(a.Status))
	}
	return d.llm.GenerateScreeningEmail(ctx, a.Name, a.Role)
}

func fallbackBody(intent workflow.Intent) string {
	if intent == workflow.IntentFollowUp {
		return FallbackFollowUpBody
	}
	return FallbackScreeningBody
}
