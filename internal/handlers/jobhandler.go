package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sagarpandeyprofessional/keasy-api/internal/dtos"
	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"github.com/sagarpandeyprofessional/keasy-api/internal/search"
	"github.com/sagarpandeyprofessional/keasy-api/internal/services"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

// JobHandler serves the public listing surface plus the employer and
// interaction endpoints.
type JobHandler struct {
	JobService         *services.JobService
	InteractionService *services.InteractionService
}

func NewJobHandler(jobs *services.JobService, interactions *services.InteractionService) *JobHandler {
	return &JobHandler{JobService: jobs, InteractionService: interactions}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Authentication is external; the gateway injects the acting identity.
func userIDFrom(c *gin.Context) (uint, bool) {
	raw := c.GetHeader("X-User-ID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func isAdmin(c *gin.Context) bool {
	return c.GetHeader("X-User-Role") == "admin"
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ListJobs is GET /jobs: approved postings pushed through the filter
// engine and annotated with deadline status.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.ListJobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	spec := search.Spec{
		Query:            q.Query,
		ExperienceLevels: splitCSV(q.Experience),
		LanguageCodes:    splitCSV(q.Languages),
		SalaryMin:        q.SalaryMin,
		SalaryMax:        q.SalaryMax,
	}
	for _, t := range splitCSV(q.JobTypes) {
		spec.JobTypes = append(spec.JobTypes, models.JobType(t))
	}
	for _, t := range splitCSV(q.LocationTypes) {
		spec.LocationTypes = append(spec.LocationTypes, models.LocationType(t))
	}

	session, err := uuid.Parse(q.Session)
	if err != nil {
		session = uuid.Nil
	}

	listings, err := h.JobService.PublicListings(services.ListingOptions{
		Session:    session,
		Spec:       spec,
		CategoryID: q.CategoryID,
		Lang:       q.Lang,
		ActiveOnly: q.ActiveOnly,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(listings), "jobs": listings})
}

// GetJob is GET /jobs/:id. Also bumps the view counter.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	listing, err := h.JobService.GetJob(id, c.Query("lang"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// SubmitJob is POST /jobs: an employer submission, always pending.
func (h *JobHandler) SubmitJob(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}
	var req dtos.JobSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.JobService.SubmitJob(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCompanyNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "Company is not verified"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob is PUT /jobs/:id: owner content edit, approval untouched.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.JobService.UpdateJob(userID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this job"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob is DELETE /jobs/:id, allowed for the owner or an admin.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	if err := h.JobService.DeleteJob(userID, id, isAdmin(c)); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this job"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job: " + err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleSave is POST /jobs/:id/save.
func (h *JobHandler) ToggleSave(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	res, err := h.InteractionService.ToggleSave(userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle save: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListSaved is GET /saved.
func (h *JobHandler) ListSaved(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}
	saved, err := h.InteractionService.SavedJobs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list saved jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(saved), "saved": saved})
}

// Apply is POST /jobs/:id/apply. The contact value is returned even
// when recording fails, so the client can still open the channel.
func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	res, err := h.InteractionService.Apply(userID, id, models.ContactMethod(req.Method))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		case errors.Is(err, services.ErrMethodUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Contact method not offered by this job"})
			return
		}
		if res != nil {
			// tracking failed but the contact channel still opens
			c.JSON(http.StatusOK, gin.H{
				"recorded":       false,
				"method":         res.Method,
				"contact_value":  res.ContactValue,
				"tracking_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListApplications is GET /applications.
func (h *JobHandler) ListApplications(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}
	apps, err := h.InteractionService.Applications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(apps), "applications": apps})
}
