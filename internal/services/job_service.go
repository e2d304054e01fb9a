package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sagarpandeyprofessional/keasy-api/internal/dtos"
	"github.com/sagarpandeyprofessional/keasy-api/internal/jobstatus"
	"github.com/sagarpandeyprofessional/keasy-api/internal/lifecycle"
	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"github.com/sagarpandeyprofessional/keasy-api/internal/search"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

var (
	// ErrCompanyNotVerified blocks submissions from unverified employers.
	ErrCompanyNotVerified = errors.New("company is not verified")
	// ErrNotOwner blocks edits/deletes by anyone but the posting user.
	ErrNotOwner = errors.New("job does not belong to this user")
)

// Listing is one job annotated with its deadline-derived status.
type Listing struct {
	models.Job
	Status      jobstatus.Status `json:"status"`
	StatusLabel string           `json:"status_label"`
}

// ListingOptions drives a public listing request.
type ListingOptions struct {
	Session    uuid.UUID
	Spec       search.Spec
	CategoryID *uint
	Lang       string
	// ActiveOnly drops approved-but-expired jobs from the result.
	ActiveOnly bool
}

type JobService struct {
	Store store.Store
	Cache *search.ResultCache
	// Now is injected so listing/expiry decisions are testable.
	Now func() time.Time
}

func NewJobService(st store.Store, cache *search.ResultCache) *JobService {
	return &JobService{Store: st, Cache: cache, Now: time.Now}
}

// PublicListings returns the approved jobs matching the filter spec,
// newest first, each annotated with deadline status. Approval and
// expiry are independent gates: approval is applied at the store,
// expiry only when ActiveOnly asks for it.
func (s *JobService) PublicListings(opts ListingOptions) ([]Listing, error) {
	approved := models.ApprovalApproved
	// category rides on the spec so it participates in the cache key
	opts.Spec.CategoryID = opts.CategoryID
	load := func() ([]models.Job, error) {
		jobs, err := s.Store.ListJobs(store.JobFilter{
			Approval:   &approved,
			CategoryID: opts.CategoryID,
		})
		if err != nil {
			return nil, err
		}
		return search.Filter(jobs, opts.Spec), nil
	}

	var jobs []models.Job
	var err error
	if s.Cache != nil {
		jobs, err = s.Cache.GetOrLoad(opts.Session, opts.Spec, load)
	} else {
		jobs, err = load()
	}
	if err != nil {
		return nil, fmt.Errorf("public listings: %w", err)
	}

	now := s.Now()
	out := make([]Listing, 0, len(jobs))
	for _, job := range jobs {
		st := jobstatus.Evaluate(job.Deadline, now)
		if opts.ActiveOnly && st.Expired {
			continue
		}
		out = append(out, Listing{Job: job, Status: st, StatusLabel: st.Label(opts.Lang)})
	}
	return out, nil
}

// GetJob fetches one job and bumps its view counter. The counter bump
// is best-effort; a failed increment never fails the read.
func (s *JobService) GetJob(id uint, lang string) (*Listing, error) {
	job, err := s.Store.GetJob(id)
	if err != nil {
		return nil, err
	}
	if err := s.Store.IncrementView(id); err != nil {
		log.Printf("view counter bump failed for job %d: %v", id, err)
	}
	st := jobstatus.Evaluate(job.Deadline, s.Now())
	return &Listing{Job: *job, Status: st, StatusLabel: st.Label(lang)}, nil
}

// SubmitJob creates a posting for a verified company. Submissions
// always enter the moderation queue as pending.
func (s *JobService) SubmitJob(userID uint, req *dtos.JobSubmissionRequest) (*models.Job, error) {
	company, err := s.Store.GetCompany(req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("submit job: %w", err)
	}
	if !company.Verified {
		return nil, ErrCompanyNotVerified
	}

	job := &models.Job{
		CompanyID:    req.CompanyID,
		CategoryID:   req.CategoryID,
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		JobType:      models.JobType(req.JobType),
		LocationType: models.LocationType(req.LocationType),
		Location:     req.Location,
		MapLink:      req.MapLink,
		SalaryType:   models.SalaryType(req.SalaryType),
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Experience:   req.Experience,
		Skills:       req.Skills,
		Deadline:     req.Deadline,
		Attachments:  req.Attachments,
		CoverImage:   req.CoverImage,
		Approval:     models.ApprovalPending,
	}
	for _, l := range req.Languages {
		job.Languages = append(job.Languages, models.JobLanguage{
			Code:        l.Code,
			Proficiency: l.Proficiency,
		})
	}
	applyContacts(job, req.Contacts)

	if err := s.Store.CreateJob(job); err != nil {
		return nil, fmt.Errorf("submit job: %w", err)
	}
	s.invalidate()
	return job, nil
}

// UpdateJob applies an owner content edit. The approval state is left
// exactly as it was: edits to an approved posting do not send it back
// to the moderation queue.
func (s *JobService) UpdateJob(userID, id uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.Store.GetJob(id)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.CategoryID != nil {
		job.CategoryID = *req.CategoryID
	}
	if req.JobType != nil {
		job.JobType = models.JobType(*req.JobType)
	}
	if req.LocationType != nil {
		job.LocationType = models.LocationType(*req.LocationType)
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.MapLink != nil {
		job.MapLink = *req.MapLink
	}
	if req.SalaryType != nil {
		job.SalaryType = models.SalaryType(*req.SalaryType)
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.Experience != nil {
		job.Experience = *req.Experience
	}
	if req.Languages != nil {
		job.Languages = job.Languages[:0]
		for _, l := range *req.Languages {
			job.Languages = append(job.Languages, models.JobLanguage{
				JobID:       job.ID,
				Code:        l.Code,
				Proficiency: l.Proficiency,
			})
		}
	}
	if req.Skills != nil {
		job.Skills = *req.Skills
	}
	if req.Contacts != nil {
		applyContacts(job, *req.Contacts)
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.Attachments != nil {
		job.Attachments = *req.Attachments
	}
	if req.CoverImage != nil {
		job.CoverImage = *req.CoverImage
	}

	if err := s.Store.UpdateJob(job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	s.invalidate()
	return job, nil
}

// DeleteJob removes a posting. Owners can delete their own; admins can
// delete anything.
func (s *JobService) DeleteJob(userID, id uint, isAdmin bool) error {
	job, err := s.Store.GetJob(id)
	if err != nil {
		return err
	}
	if !isAdmin && job.UserID != userID {
		return ErrNotOwner
	}
	if err := s.Store.DeleteJob(id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	s.invalidate()
	return nil
}

// Actionable says whether a job currently accepts applications: both
// gates, moderation and deadline, must pass.
func (s *JobService) Actionable(job *models.Job) bool {
	return lifecycle.Listable(job.Approval) &&
		!jobstatus.Evaluate(job.Deadline, s.Now()).Expired
}

func (s *JobService) invalidate() {
	if s.Cache != nil {
		s.Cache.InvalidateAll()
	}
}

func applyContacts(job *models.Job, contacts map[string]string) {
	for method, value := range contacts {
		switch models.ContactMethod(method) {
		case models.ContactEmail:
			job.ContactEmailAddr = value
		case models.ContactPhone:
			job.ContactPhoneNum = value
		case models.ContactWhatsapp:
			job.ContactWhatsApp = value
		case models.ContactInstagram:
			job.ContactInsta = value
		case models.ContactFacebook:
			job.ContactFB = value
		case models.ContactWebsite:
			job.ContactSite = value
		}
	}
}
