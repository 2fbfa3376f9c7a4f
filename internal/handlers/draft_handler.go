package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internflow/applicant-tracker/internal/dtos"
	"github.com/internflow/applicant-tracker/internal/services"
	"github.com/internflow/applicant-tracker/internal/workflow"
)

type DraftHandler struct {
	Drafts *services.DraftService
}

func NewDraftHandler(d *services.DraftService) *DraftHandler {
	return &DraftHandler{Drafts: d}
}

// BeginDraft is POST /drafts. The request blocks while the generator runs;
// the rest of the API stays responsive meanwhile. The response body is the
// pending draft, AI-written or fallback — either way the flow moves on.
func (h *DraftHandler) BeginDraft(c *gin.Context) {
	var req dtos.BeginDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	draft, err := h.Drafts.Begin(c.Request.Context(), req.ApplicantID, workflow.Intent(req.Intent))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownApplicant):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrIntentNotAllowed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, draft)
}

// CurrentDraft is GET /drafts/current.
func (h *DraftHandler) CurrentDraft(c *gin.Context) {
	draft, ok := h.Drafts.Current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending draft"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ConfirmDraft is POST /drafts/confirm: commits the gated status update and
// stamps the contact time. Returns the applicant as updated.
func (h *DraftHandler) ConfirmDraft(c *gin.Context) {
	updated, err := h.Drafts.Confirm()
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPendingDraft):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUnknownApplicant):
			c.JSON(http.StatusNotFound, gin.H{"error": "applicant was deleted while the draft was pending"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelDraft is DELETE /drafts: discards the pending draft, nothing to
// roll back.
func (h *DraftHandler) CancelDraft(c *gin.Context) {
	h.Drafts.Cancel()
	c.Status(http.StatusNoContent)
}
