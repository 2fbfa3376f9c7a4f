package data

import (
	"time"

	"github.com/internflow/applicant-tracker/internal/models"
)

func intPtr(v int) *int { return &v }

func datePtr(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic("seed: bad date " + value)
	}
	return &t
}

// SeedApplicants returns the demo candidate list the store is initialized
// with at startup. This is the only "persisted" state in the system; nothing
// is ever written back.
func SeedApplicants() []models.Applicant {
	return []models.Applicant{
		{
			ID:          "1",
			Name:        "Alex Rivera",
			Email:       "alex.rivera@example.com",
			Role:        "Frontend Engineering Intern",
			AppliedDate: "2025-02-20",
			Status:      models.StatusToBeReviewed,
		},
		{
			ID:            "2",
			Name:          "Sarah Chen",
			Email:         "sarah.chen@example.com",
			Role:          "Product Design Intern",
			AppliedDate:   "2025-02-18",
			Status:        models.StatusScreeningSent,
			LastContacted: datePtr("2025-02-19"),
		},
		{
			ID:             "3",
			Name:           "Jordan Smith",
			Email:          "jordan.smith@example.com",
			Role:           "Data Science Intern",
			AppliedDate:    "2025-02-15",
			Status:         models.StatusScreeningCompleted,
			ScreeningScore: intPtr(85),
			LastContacted:  datePtr("2025-02-17"),
		},
		{
			ID:          "4",
			Name:        "Emily Davis",
			Email:       "emily.davis@example.com",
			Role:        "Backend Engineering Intern",
			AppliedDate: "2025-02-22",
			Status:      models.StatusToBeReviewed,
		},
		{
			ID:             "5",
			Name:           "Michael Brown",
			Email:          "michael.brown@example.com",
			Role:           "Product Management Intern",
			AppliedDate:    "2025-02-10",
			Status:         models.StatusInterviewScheduled,
			ScreeningScore: intPtr(92),
			LastContacted:  datePtr("2025-02-21"),
		},
	}
}
