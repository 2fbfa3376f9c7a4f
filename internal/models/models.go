package models

import "time"

// ApplicationStatus is the applicant's current pipeline stage.
type ApplicationStatus string

const (
	StatusToBeReviewed       ApplicationStatus = "To Be Reviewed"
	StatusScreeningSent      ApplicationStatus = "Screening Sent"
	StatusScreeningCompleted ApplicationStatus = "Screening Completed"
	StatusInterviewScheduled ApplicationStatus = "Interview Scheduled"
	StatusRejected           ApplicationStatus = "Rejected"
	StatusOfferSent          ApplicationStatus = "Offer Sent"
)

// AllStatuses lists every known pipeline stage, in pipeline order.
// Useful for filter dropdowns and validation.
var AllStatuses = []ApplicationStatus{
	StatusToBeReviewed,
	StatusScreeningSent,
	StatusScreeningCompleted,
	StatusInterviewScheduled,
	StatusRejected,
	StatusOfferSent,
}

// IsValid reports whether s is a member of the known status set.
// Unknown values can only come from external data; the workflow never
// produces one.
func (s ApplicationStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Applicant is a candidate record tracked through the hiring pipeline.
// Status is mutated only through the store's update operation; everything
// set at creation stays as-is.
type Applicant struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        string            `json:"role"`
	AppliedDate string            `json:"applied_date"`
	Status      ApplicationStatus `json:"status"`

	// Set once the screening assessment result arrives; 0-100.
	ScreeningScore *int `json:"screening_score,omitempty"`
	// Stamped every time an outbound email is confirmed sent.
	LastContacted *time.Time `json:"last_contacted,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}
