package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/internflow/applicant-tracker/internal/dtos"
	"github.com/internflow/applicant-tracker/internal/models"
	"github.com/internflow/applicant-tracker/internal/store"
	"github.com/internflow/applicant-tracker/internal/workflow"
)

type ApplicantHandler struct {
	Store *store.ApplicantStore
}

func NewApplicantHandler(s *store.ApplicantStore) *ApplicantHandler {
	return &ApplicantHandler{Store: s}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// applicantView is what list/detail endpoints return: the record plus the
// workflow actions currently legal for it, so the UI never has to know the
// transition table.
type applicantView struct {
	models.Applicant
	Actions []workflow.Action `json:"actions"`
}

func view(a models.Applicant) applicantView {
	return applicantView{Applicant: a, Actions: workflow.ActionsFor(a.Status)}
}

// ListApplicants is GET /applicants. Optional ?search= matches name, email,
// or role case-insensitively; optional ?status= filters one exact stage.
func (h *ApplicantHandler) ListApplicants(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))
	status := c.Query("status")

	var out []applicantView
	for _, a := range h.Store.List() {
		if status != "" && string(a.Status) != status {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, view(a))
	}
	if out == nil {
		out = []applicantView{}
	}
	c.JSON(http.StatusOK, gin.H{"applicants": out, "count": len(out)})
}

// matchesSearch mirrors the applicant-table search box: lowercase substring
// match over the descriptive fields.
func matchesSearch(a models.Applicant, query string) bool {
	return strings.Contains(strings.ToLower(a.Name), query) ||
		strings.Contains(strings.ToLower(a.Email), query) ||
		strings.Contains(strings.ToLower(a.Role), query)
}

// GetApplicant is GET /applicants/:id.
func (h *ApplicantHandler) GetApplicant(c *gin.Context) {
	a, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "applicant not found"})
		return
	}
	c.JSON(http.StatusOK, view(a))
}

// AddApplicant is POST /applicants. Whatever status the payload carries is
// overridden; every new candidate starts at To Be Reviewed.
func (h *ApplicantHandler) AddApplicant(c *gin.Context) {
	var req dtos.AddApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	stored := h.Store.Add(models.Applicant{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		AppliedDate: req.AppliedDate,
		Status:      models.ApplicationStatus(req.Status),
		Notes:       req.Notes,
	})
	c.JSON(http.StatusCreated, view(stored))
}

// DeleteApplicant is DELETE /applicants/:id. Deleting an id that is already
// gone is fine; the store treats it as a no-op.
func (h *ApplicantHandler) DeleteApplicant(c *gin.Context) {
	h.Store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ApplyAction is POST /applicants/:id/actions/:action for the non-gated
// workflow actions (schedule-interview, reject). The email-gated ones go
// through the drafts flow instead.
func (h *ApplicantHandler) ApplyAction(c *gin.Context) {
	a, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "applicant not found"})
		return
	}

	action := workflow.Action(c.Param("action"))
	if _, gated := workflow.RequiresDraft(action); gated {
		c.JSON(http.StatusConflict, gin.H{"error": "action requires a confirmed email draft; use the drafts endpoints"})
		return
	}
	if action == workflow.ActionDelete {
		h.Store.Delete(a.ID)
		c.Status(http.StatusNoContent)
		return
	}

	next, err := workflow.Apply(a.Status, action)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	h.Store.UpdateStatus(a.ID, next, nil)
	updated, _ := h.Store.Get(a.ID)
	c.JSON(http.StatusOK, view(updated))
}

// GetStats is GET /stats: the dashboard and screening-portal aggregates.
func (h *ApplicantHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Stats())
}
