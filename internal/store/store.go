package store

import (
	"errors"
	"time"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
)

var (
	// ErrNotFound means the referenced row does not exist. Surfaced to
	// the caller as a 404, never retried.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a uniqueness rule forbids the insert. The
	// interaction tracker treats this as idempotent success.
	ErrDuplicate = errors.New("duplicate record")
)

// JobFilter is the coarse server-side filter for listing jobs. The
// fine-grained search predicate runs in memory on the fetched set.
type JobFilter struct {
	Approval     *models.ApprovalStatus
	CategoryID   *uint
	CompanyID    *uint
	UserID       *uint
	// HiddenBefore excludes jobs whose deadline passed before the
	// given instant. Jobs without a deadline always pass.
	HiddenBefore *time.Time
}

// Store is the record-store contract the core logic needs. Backed by
// Postgres in self-hosted deployments and by the hosted Supabase
// tables otherwise.
type Store interface {
	ListJobs(f JobFilter) ([]models.Job, error)
	GetJob(id uint) (*models.Job, error)
	CreateJob(job *models.Job) error
	// UpdateJob persists a content edit. The job's Languages list is
	// authoritative: stored entries are replaced wholesale, so dropped
	// languages disappear and an empty list clears them all.
	UpdateJob(job *models.Job) error
	DeleteJob(id uint) error
	UpdateJobApproval(id uint, status models.ApprovalStatus) (*models.Job, error)
	IncrementView(id uint) error

	ListApplications(userID uint, jobID *uint) ([]models.Application, error)
	CreateApplication(userID, jobID uint, method models.ContactMethod) (*models.Application, error)

	ListSaved(userID uint) ([]models.SavedJob, error)
	CreateSaved(userID, jobID uint) (*models.SavedJob, error)
	DeleteSaved(id uint) error

	GetCompany(id uint) (*models.Company, error)
	ListCategories() ([]models.Category, error)
	ListLanguages() ([]models.Language, error)
}
