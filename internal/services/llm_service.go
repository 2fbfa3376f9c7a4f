package services

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// EmailGenerator is the text-generation collaborator the draft flow calls.
// Both methods are blocking network calls that may fail; whatever they
// return is untrusted free text shown to the recruiter verbatim, never
// parsed. Tests swap in a mock.
type EmailGenerator interface {
	GenerateScreeningEmail(ctx context.Context, applicantName, role string) (string, error)
	GenerateFollowUpEmail(ctx context.Context, applicantName, role, status string) (string, error)
}

// LLMService talks to Gemini. One client for the whole process so we don't
// recreate it on every draft.
type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the Gemini client from GEMINI_API_KEY.
func NewLLMService(ctx context.Context) (*LLMService, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &LLMService{Client: llm}, nil
}

const screeningEmailPrompt = `
You are an AI recruiting assistant for a tech company.
Write a professional yet welcoming email to an intern applicant named %s who applied for the %s position.
The purpose of the email is to invite them to complete a pre-interview screening assessment.

Key points to include:
- Thank them for their application.
- Mention that we were impressed by their profile.
- Explain that the next step is a brief technical screening to assess their skills.
- Provide a placeholder link [LINK_TO_ASSESSMENT].
- Mention the deadline is 3 days from now.
- Keep the tone modern, encouraging, and professional.
- Sign off as "The InternFlow Recruiting Team".

Return ONLY the body of the email. Do not include subject lines or pre-text.
`

const followUpEmailPrompt = `
You are an AI recruiting assistant.
Write a follow-up email to %s regarding their %s application.
Current status: %s.

If status is 'Screening Sent', remind them to complete it.
If status is 'Screening Completed', thank them and say we are reviewing results.

Keep it brief and professional.
Return ONLY the email body.
`

// GenerateScreeningEmail drafts the invitation to the pre-interview
// screening assessment. Only the applicant's name and role go into the
// prompt; no other record fields are disclosed.
func (s *LLMService) GenerateScreeningEmail(ctx context.Context, applicantName, role string) (string, error) {
	prompt := fmt.Sprintf(screeningEmailPrompt, applicantName, role)
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}

// GenerateFollowUpEmail drafts a reminder keyed off the applicant's current
// pipeline stage.
func (s *LLMService) GenerateFollowUpEmail(ctx context.Context, applicantName, role, status string) (string, error) {
	prompt := fmt.Sprintf(followUpEmailPrompt, applicantName, role, status)
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}
