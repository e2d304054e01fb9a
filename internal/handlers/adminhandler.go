package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagarpandeyprofessional/keasy-api/internal/dtos"
	"github.com/sagarpandeyprofessional/keasy-api/internal/lifecycle"
	"github.com/sagarpandeyprofessional/keasy-api/internal/services"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

// AdminHandler serves the moderation queue.
type AdminHandler struct {
	ModerationService *services.ModerationService
	ReferenceService  *services.ReferenceService
}

func NewAdminHandler(moderation *services.ModerationService, refs *services.ReferenceService) *AdminHandler {
	return &AdminHandler{ModerationService: moderation, ReferenceService: refs}
}

// RequireAdmin rejects requests whose injected role is not admin.
func RequireAdmin(c *gin.Context) {
	if !isAdmin(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}
	c.Next()
}

// PendingQueue is GET /admin/jobs/pending.
func (h *AdminHandler) PendingQueue(c *gin.Context) {
	jobs, err := h.ModerationService.PendingQueue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
}

// Decide is PATCH /admin/jobs/:id/approval.
func (h *AdminHandler) Decide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	var req dtos.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	decision, err := lifecycle.ParseDecision(req.Decision)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job, err := h.ModerationService.Decide(id, decision)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide job: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// BulkDecide is POST /admin/jobs/approval. Always 200: the body lists
// per-id outcomes, successes and failures side by side.
func (h *AdminHandler) BulkDecide(c *gin.Context) {
	var req dtos.BulkApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	decision, err := lifecycle.ParseDecision(req.Decision)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results := h.ModerationService.DecideAll(c.Request.Context(), req.JobIDs, decision)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ListCategories is GET /categories.
func (h *AdminHandler) ListCategories(c *gin.Context) {
	cats, err := h.ReferenceService.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// ListLanguages is GET /languages.
func (h *AdminHandler) ListLanguages(c *gin.Context) {
	langs, err := h.ReferenceService.Languages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list languages: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, langs)
}
