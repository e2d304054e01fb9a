package services

import (
	"context"
	"fmt"

	"github.com/sagarpandeyprofessional/keasy-api/internal/lifecycle"
	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"github.com/sagarpandeyprofessional/keasy-api/internal/search"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

// ModerationService runs the admin approval queue.
type ModerationService struct {
	Store store.Store
	Cache *search.ResultCache
}

func NewModerationService(st store.Store, cache *search.ResultCache) *ModerationService {
	return &ModerationService{Store: st, Cache: cache}
}

// PendingQueue lists jobs awaiting a verdict, newest first.
func (s *ModerationService) PendingQueue() ([]models.Job, error) {
	pending := models.ApprovalPending
	return s.Store.ListJobs(store.JobFilter{Approval: &pending})
}

// Decide applies one verdict to one job. Deciding a job that is
// already in the target state succeeds without a store write.
func (s *ModerationService) Decide(id uint, d lifecycle.Decision) (*models.Job, error) {
	job, err := s.Store.GetJob(id)
	if err != nil {
		return nil, err
	}
	next, changed := lifecycle.Apply(job.Approval, d)
	if !changed {
		return job, nil
	}
	updated, err := s.Store.UpdateJobApproval(id, next)
	if err != nil {
		return nil, fmt.Errorf("decide job %d: %w", id, err)
	}
	if s.Cache != nil {
		s.Cache.InvalidateAll()
	}
	return updated, nil
}

// BulkResult is the outcome for one id of a bulk verdict.
type BulkResult struct {
	JobID  uint                  `json:"job_id"`
	Status models.ApprovalStatus `json:"status,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// DecideAll applies one verdict to each id in turn. Items are
// independent: a failure is recorded for that id and processing
// continues. Cancelling the context stops further items; the ones
// already processed stay transitioned.
func (s *ModerationService) DecideAll(ctx context.Context, ids []uint, d lifecycle.Decision) []BulkResult {
	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			results = append(results, BulkResult{JobID: id, Error: err.Error()})
			continue
		}
		job, err := s.Decide(id, d)
		if err != nil {
			results = append(results, BulkResult{JobID: id, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{JobID: id, Status: job.Approval})
	}
	return results
}
