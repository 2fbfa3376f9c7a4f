package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/internflow/applicant-tracker/internal/models"
)

// Extra carries the optional fields an update may merge into an applicant
// alongside the status change. Nil fields are left untouched.
type Extra struct {
	LastContacted  *time.Time
	ScreeningScore *int
	Notes          *string
}

// ApplicantStore is the single source of truth for the applicant collection.
// It lives for the whole process: seeded once at startup, gone when the
// process exits. Every read hands out a copy, so callers can never reach the
// backing slice, and every mutation publishes a fresh snapshot to
// subscribers.
type ApplicantStore struct {
	mu          sync.Mutex
	applicants  []models.Applicant
	subscribers []func([]models.Applicant)
}

// NewApplicantStore creates a store pre-populated with seed records. The
// seed is copied; the caller's slice is not retained.
func NewApplicantStore(seed []models.Applicant) *ApplicantStore {
	s := &ApplicantStore{
		applicants: make([]models.Applicant, len(seed)),
	}
	copy(s.applicants, seed)
	return s
}

// List returns the full collection in insertion order. The returned slice is
// a snapshot; mutating it has no effect on the store.
func (s *ApplicantStore) List() []models.Applicant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get looks up a single applicant by id.
func (s *ApplicantStore) Get(id string) (models.Applicant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applicants {
		if a.ID == id {
			return a, true
		}
	}
	return models.Applicant{}, false
}

// Add appends a candidate record and returns it as stored. Whatever status
// the caller supplied is overridden: every new applicant is funneled into
// the intake stage. An empty or already-taken id is replaced with a fresh
// UUID so intake never fails on a collision.
func (s *ApplicantStore) Add(a models.Applicant) models.Applicant {
	s.mu.Lock()
	a.Status = models.StatusToBeReviewed
	if a.ID == "" || s.hasLocked(a.ID) {
		a.ID = uuid.NewString()
	}
	s.applicants = append(s.applicants, a)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return a
}

// UpdateStatus replaces the applicant's status and merges any additional
// fields, leaving everything else untouched. Unknown id is a silent no-op;
// the collection is unchanged and no error is reported.
func (s *ApplicantStore) UpdateStatus(id string, status models.ApplicationStatus, extra *Extra) {
	s.mu.Lock()
	updated := false
	for i := range s.applicants {
		if s.applicants[i].ID != id {
			continue
		}
		s.applicants[i].Status = status
		if extra != nil {
			if extra.LastContacted != nil {
				s.applicants[i].LastContacted = extra.LastContacted
			}
			if extra.ScreeningScore != nil {
				s.applicants[i].ScreeningScore = extra.ScreeningScore
			}
			if extra.Notes != nil {
				s.applicants[i].Notes = *extra.Notes
			}
		}
		updated = true
		break
	}
	var snap []models.Applicant
	if updated {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if updated {
		s.publish(snap)
	}
}

// Delete removes the applicant with the matching id. Unknown id is a silent
// no-op, which also makes a double delete harmless.
func (s *ApplicantStore) Delete(id string) {
	s.mu.Lock()
	removed := false
	for i := range s.applicants {
		if s.applicants[i].ID == id {
			s.applicants = append(s.applicants[:i], s.applicants[i+1:]...)
			removed = true
			break
		}
	}
	var snap []models.Applicant
	if removed {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if removed {
		s.publish(snap)
	}
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// mutation. This is how consumers detect changes without polling; the
// snapshot is theirs to keep.
func (s *ApplicantStore) Subscribe(fn func([]models.Applicant)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Stats are the derived aggregates the dashboard and screening portal show.
type Stats struct {
	Total              int `json:"total"`
	ToBeReviewed       int `json:"to_be_reviewed"`
	ScreeningSent      int `json:"screening_sent"`
	ScreeningCompleted int `json:"screening_completed"`
	InterviewScheduled int `json:"interview_scheduled"`
	Rejected           int `json:"rejected"`
	OfferSent          int `json:"offer_sent"`
	// Average screening score over completed screenings, rounded; 0 when
	// nobody has completed one yet.
	AverageScore int `json:"average_score"`
}

// Stats recomputes the aggregates from a fresh snapshot on every call.
func (s *ApplicantStore) Stats() Stats {
	applicants := s.List()

	var st Stats
	st.Total = len(applicants)
	scoreSum, scored := 0, 0
	for _, a := range applicants {
		switch a.Status {
		case models.StatusToBeReviewed:
			st.ToBeReviewed++
		case models.StatusScreeningSent:
			st.ScreeningSent++
		case models.StatusScreeningCompleted:
			st.ScreeningCompleted++
		case models.StatusInterviewScheduled:
			st.InterviewScheduled++
		case models.StatusRejected:
			st.Rejected++
		case models.StatusOfferSent:
			st.OfferSent++
		}
		if a.Status == models.StatusScreeningCompleted && a.ScreeningScore != nil {
			scoreSum += *a.ScreeningScore
			scored++
		}
	}
	if scored > 0 {
		st.AverageScore = (scoreSum + scored/2) / scored
	}
	return st
}

func (s *ApplicantStore) hasLocked(id string) bool {
	for _, a := range s.applicants {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *ApplicantStore) snapshotLocked() []models.Applicant {
	snap := make([]models.Applicant, len(s.applicants))
	copy(snap, s.applicants)
	return snap
}

// publish runs outside the store lock so a subscriber may call back into
// the store without deadlocking.
func (s *ApplicantStore) publish(snap []models.Applicant) {
	s.mu.Lock()
	subs := make([]func([]models.Applicant), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
