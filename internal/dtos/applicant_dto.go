package dtos

// AddApplicantRequest is the payload for adding a candidate. Any status the
// client sends along is ignored server-side; new applicants always enter at
// To Be Reviewed.
type AddApplicantRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required"`
	AppliedDate string `json:"applied_date" binding:"required"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// BeginDraftRequest starts the draft-email flow for one applicant.
type BeginDraftRequest struct {
	ApplicantID string `json:"applicant_id" binding:"required"`
	Intent      string `json:"intent" binding:"required,oneof=screening followup"`
}
