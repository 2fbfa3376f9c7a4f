package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/internflow/applicant-tracker/internal/models"
	"github.com/internflow/applicant-tracker/internal/services"
	"github.com/internflow/applicant-tracker/internal/store"
)

type stubGenerator struct {
	body string
	err  error
}

func (g *stubGenerator) GenerateScreeningEmail(context.Context, string, string) (string, error) {
	return g.body, g.err
}

func (g *stubGenerator) GenerateFollowUpEmail(context.Context, string, string, string) (string, error) {
	return g.body, g.err
}

func newTestRouter(t *testing.T, gen services.EmailGenerator) (*gin.Engine, *store.ApplicantStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	score := 85
	s := store.NewApplicantStore([]models.Applicant{
		{ID: "1", Name: "Alex Rivera", Email: "alex@example.com", Role: "Frontend Engineering Intern", AppliedDate: "2025-02-20", Status: models.StatusToBeReviewed},
		{ID: "2", Name: "Jordan Smith", Email: "jordan@example.com", Role: "Data Science Intern", AppliedDate: "2025-02-15", Status: models.StatusScreeningCompleted, ScreeningScore: &score},
	})
	drafts := services.NewDraftService(s, gen)

	applicantHandler := NewApplicantHandler(s)
	draftHandler := NewDraftHandler(drafts)

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/health", HealthCheck)
	api.GET("/applicants", applicantHandler.ListApplicants)
	api.POST("/applicants", applicantHandler.AddApplicant)
	api.GET("/applicants/:id", applicantHandler.GetApplicant)
	api.DELETE("/applicants/:id", applicantHandler.DeleteApplicant)
	api.POST("/applicants/:id/actions/:action", applicantHandler.ApplyAction)
	api.GET("/stats", applicantHandler.GetStats)
	api.POST("/drafts", draftHandler.BeginDraft)
	api.GET("/drafts/current", draftHandler.CurrentDraft)
	api.POST("/drafts/confirm", draftHandler.ConfirmDraft)
	api.DELETE("/drafts", draftHandler.CancelDraft)
	return r, s
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListApplicantsFilters(t *testing.T) {
	r, _ := newTestRouter(t, &stubGenerator{body: "x"})

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?search=jordan", 1},
		{"?search=intern", 2},
		{"?search=ALEX", 1},
		{"?search=nobody", 0},
		{"?status=Screening%20Completed", 1},
		{"?status=Rejected", 0},
		{"?search=intern&status=To%20Be%20Reviewed", 1},
	}
	for _, tt := range tests {
		w := doJSON(t, r, http.MethodGet, "/api/v1/applicants"+tt.query, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("list %q: status %d", tt.query, w.Code)
		}
		var resp struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Count != tt.want {
			t.Errorf("list %q: count = %d, want %d", tt.query, resp.Count, tt.want)
		}
	}
}

func TestAddApplicantForcesStatus(t *testing.T) {
	r, s := newTestRouter(t, &stubGenerator{body: "x"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/applicants", map[string]string{
		"id":           "3",
		"name":         "Taylor Kim",
		"email":        "taylor@example.com",
		"role":         "Backend Engineering Intern",
		"applied_date": "2025-03-01",
		"status":       "Offer Sent",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: status %d, body %s", w.Code, w.Body.String())
	}

	a, ok := s.Get("3")
	if !ok {
		t.Fatal("added applicant not in store")
	}
	if a.Status != models.StatusToBeReviewed {
		t.Errorf("stored status = %q, want To Be Reviewed", a.Status)
	}
}

func TestAddApplicantValidation(t *testing.T) {
	r, _ := newTestRouter(t, &stubGenerator{body: "x"})
	w := doJSON(t, r, http.MethodPost, "/api/v1/applicants", map[string]string{
		"name": "Missing Fields",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("add with missing fields: status %d, want 400", w.Code)
	}
}

func TestRejectActionKeepsScore(t *testing.T) {
	r, s := newTestRouter(t, &stubGenerator{body: "x"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/applicants/2/actions/reject", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reject: status %d, body %s", w.Code, w.Body.String())
	}

	a, _ := s.Get("2")
	if a.Status != models.StatusRejected {
		t.Errorf("status = %q, want Rejected", a.Status)
	}
	if a.ScreeningScore == nil || *a.ScreeningScore != 85 {
		t.Errorf("ScreeningScore = %v, want 85 unchanged", a.ScreeningScore)
	}
}

func TestActionRejectedWhenIllegal(t *testing.T) {
	r, _ := newTestRouter(t, &stubGenerator{body: "x"})

	// schedule-interview from To Be Reviewed is not in the table.
	w := doJSON(t, r, http.MethodPost, "/api/v1/applicants/1/actions/schedule-interview", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("illegal action: status %d, want 409", w.Code)
	}

	// proceed is draft-gated; the plain action endpoint refuses it.
	w = doJSON(t, r, http.MethodPost, "/api/v1/applicants/1/actions/proceed", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("gated action: status %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/applicants/missing/actions/reject", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status %d, want 404", w.Code)
	}
}

func TestDeleteApplicantIdempotent(t *testing.T) {
	r, s := newTestRouter(t, &stubGenerator{body: "x"})

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodDelete, "/api/v1/applicants/1", nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("delete round %d: status %d, want 204", i+1, w.Code)
		}
	}
	if len(s.List()) != 1 {
		t.Errorf("store has %d applicants, want 1", len(s.List()))
	}
}

func TestDraftFlowEndToEnd(t *testing.T) {
	r, s := newTestRouter(t, &stubGenerator{body: "Hello"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts", map[string]string{
		"applicant_id": "1",
		"intent":       "screening",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("begin: status %d, body %s", w.Code, w.Body.String())
	}
	var draft struct {
		Body     string `json:"body"`
		Fallback bool   `json:"fallback"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &draft); err != nil {
		t.Fatal(err)
	}
	if draft.Body != "Hello" || draft.Fallback {
		t.Errorf("draft = %+v, want generated body", draft)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/drafts/current", nil)
	if w.Code != http.StatusOK {
		t.Errorf("current: status %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/drafts/confirm", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: status %d, body %s", w.Code, w.Body.String())
	}

	a, _ := s.Get("1")
	if a.Status != models.StatusScreeningSent {
		t.Errorf("status after confirm = %q, want Screening Sent", a.Status)
	}
	if a.LastContacted == nil {
		t.Error("LastContacted not stamped on confirm")
	}

	// Slot is spent: a second confirm has nothing to commit.
	w = doJSON(t, r, http.MethodPost, "/api/v1/drafts/confirm", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second confirm: status %d, want 409", w.Code)
	}
}

func TestDraftFallbackFlowStillTransitions(t *testing.T) {
	r, s := newTestRouter(t, &stubGenerator{err: errors.New("model down")})

	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts", map[string]string{
		"applicant_id": "1",
		"intent":       "screening",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("begin with failing generator: status %d, body %s", w.Code, w.Body.String())
	}
	var draft struct {
		Body     string `json:"body"`
		Fallback bool   `json:"fallback"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &draft); err != nil {
		t.Fatal(err)
	}
	if draft.Body != services.FallbackScreeningBody || !draft.Fallback {
		t.Errorf("draft = %+v, want fallback body", draft)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/drafts/confirm", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm fallback draft: status %d", w.Code)
	}
	if a, _ := s.Get("1"); a.Status != models.StatusScreeningSent {
		t.Errorf("status = %q, want Screening Sent", a.Status)
	}
}

func TestDraftBeginConflictsAndCancel(t *testing.T) {
	r, s := newTestRouter(t, &stubGenerator{body: "Hello"})

	// Applicant 2 is Screening Completed; no draft intent applies there.
	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts", map[string]string{
		"applicant_id": "2",
		"intent":       "followup",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("disallowed intent: status %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/drafts", map[string]string{
		"applicant_id": "missing",
		"intent":       "screening",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown applicant: status %d, want 404", w.Code)
	}

	// Begin then cancel: applicant untouched, slot empty.
	doJSON(t, r, http.MethodPost, "/api/v1/drafts", map[string]string{
		"applicant_id": "1",
		"intent":       "screening",
	})
	w = doJSON(t, r, http.MethodDelete, "/api/v1/drafts", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("cancel: status %d, want 204", w.Code)
	}
	if a, _ := s.Get("1"); a.Status != models.StatusToBeReviewed || a.LastContacted != nil {
		t.Errorf("cancel mutated applicant: %+v", a)
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/drafts/current", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("current after cancel: status %d, want 404", w.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, &stubGenerator{body: "x"})

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: status %d", w.Code)
	}
	var st struct {
		Total              int `json:"total"`
		ToBeReviewed       int `json:"to_be_reviewed"`
		ScreeningCompleted int `json:"screening_completed"`
		AverageScore       int `json:"average_score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Total != 2 || st.ToBeReviewed != 1 || st.ScreeningCompleted != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.AverageScore != 85 {
		t.Errorf("average score = %d, want 85", st.AverageScore)
	}
}
