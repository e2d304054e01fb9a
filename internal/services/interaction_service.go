package services

import (
	"errors"
	"fmt"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

// ErrMethodUnavailable means the posting does not offer the requested
// contact channel.
var ErrMethodUnavailable = errors.New("contact method not offered by this job")

// InteractionService enforces the per-user idempotency rules for
// bookmarks and applications. The store's unique indexes are the real
// guard; the read-before-write here only decides the common path, and
// a duplicate-key error from a racing request is folded into success.
type InteractionService struct {
	Store store.Store
}

func NewInteractionService(st store.Store) *InteractionService {
	return &InteractionService{Store: st}
}

// SaveResult reports the state after a toggle.
type SaveResult struct {
	Saved bool             `json:"saved"`
	Entry *models.SavedJob `json:"entry,omitempty"`
}

// ToggleSave flips the bookmark for (user, job): creates one when
// absent, deletes it when present. Re-saving after an unsave creates a
// fresh row with a new id and timestamp; the old identity is gone.
func (s *InteractionService) ToggleSave(userID, jobID uint) (*SaveResult, error) {
	if _, err := s.Store.GetJob(jobID); err != nil {
		return nil, err
	}

	saved, err := s.Store.ListSaved(userID)
	if err != nil {
		return nil, fmt.Errorf("toggle save: %w", err)
	}
	for _, row := range saved {
		if row.JobID == jobID {
			if err := s.Store.DeleteSaved(row.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("toggle save: %w", err)
			}
			return &SaveResult{Saved: false}, nil
		}
	}

	entry, err := s.Store.CreateSaved(userID, jobID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// a racing duplicate toggle already saved it
			return &SaveResult{Saved: true}, nil
		}
		return nil, fmt.Errorf("toggle save: %w", err)
	}
	return &SaveResult{Saved: true, Entry: entry}, nil
}

// SavedJobs lists the user's bookmarks, newest first.
func (s *InteractionService) SavedJobs(userID uint) ([]models.SavedJob, error) {
	return s.Store.ListSaved(userID)
}

// ApplyResult reports one apply-via-method invocation. ContactValue is
// always populated when the method exists; the caller opens that
// channel regardless of whether a new record was written.
type ApplyResult struct {
	Recorded     bool                   `json:"recorded"`
	Method       models.ContactMethod   `json:"method"`
	ContactValue string                 `json:"contact_value"`
	UsedMethods  []models.ContactMethod `json:"used_methods"`
}

// Apply records the first use of a contact method on a job and returns
// the channel value to open. Repeats are no-ops on the record but the
// channel value still comes back, so the user's actual contact action
// is never blocked. A store write failure is returned alongside a
// usable result for the same reason: tracking is best-effort.
func (s *InteractionService) Apply(userID, jobID uint, method models.ContactMethod) (*ApplyResult, error) {
	job, err := s.Store.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	contact := job.ContactValue(method)
	if contact == "" {
		return nil, ErrMethodUnavailable
	}

	used, err := s.AppliedMethods(userID, jobID)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	res := &ApplyResult{Method: method, ContactValue: contact, UsedMethods: used}
	for _, m := range used {
		if m == method {
			return res, nil
		}
	}

	if _, err := s.Store.CreateApplication(userID, jobID, method); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return res, nil
		}
		return res, fmt.Errorf("apply: %w", err)
	}
	res.Recorded = true
	res.UsedMethods = append(res.UsedMethods, method)
	return res, nil
}

// AppliedMethods returns the contact methods the user has already used
// on this job.
func (s *InteractionService) AppliedMethods(userID, jobID uint) ([]models.ContactMethod, error) {
	apps, err := s.Store.ListApplications(userID, &jobID)
	if err != nil {
		return nil, err
	}
	methods := make([]models.ContactMethod, 0, len(apps))
	for _, a := range apps {
		methods = append(methods, a.Method)
	}
	return methods, nil
}

// HasApplied is true once any contact method was used on the job.
func (s *InteractionService) HasApplied(userID, jobID uint) (bool, error) {
	methods, err := s.AppliedMethods(userID, jobID)
	if err != nil {
		return false, err
	}
	return len(methods) > 0, nil
}

// Applications lists every application record of the user.
func (s *InteractionService) Applications(userID uint) ([]models.Application, error) {
	return s.Store.ListApplications(userID, nil)
}
