package store

import (
	"errors"
	"fmt"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"gorm.io/gorm"
)

// GormStore is the Postgres-backed store. It relies on the unique
// indexes declared on the models: the database, not a prior read, is
// what guarantees save/apply uniqueness.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func (s *GormStore) ListJobs(f JobFilter) ([]models.Job, error) {
	q := s.DB.Preload("Company").Preload("Languages").Order("created_at DESC")
	if f.Approval != nil {
		q = q.Where("approval = ?", *f.Approval)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.CompanyID != nil {
		q = q.Where("company_id = ?", *f.CompanyID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.HiddenBefore != nil {
		q = q.Where("deadline IS NULL OR deadline >= ?", *f.HiddenBefore)
	}
	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *GormStore) GetJob(id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.Preload("Company").Preload("Languages").First(&job, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (s *GormStore) CreateJob(job *models.Job) error {
	return translate(s.DB.Create(job).Error)
}

// UpdateJob persists a content edit. Save alone only upserts child
// rows and never removes the ones the edit dropped, so the stored
// language entries are deleted first and re-created from the job's
// list.
func (s *GormStore) UpdateJob(job *models.Job) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.JobLanguage{}).Error; err != nil {
			return err
		}
		for i := range job.Languages {
			job.Languages[i].ID = 0
			job.Languages[i].JobID = job.ID
		}
		return tx.Save(job).Error
	})
	return translate(err)
}

func (s *GormStore) DeleteJob(id uint) error {
	res := s.DB.Delete(&models.Job{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) UpdateJobApproval(id uint, status models.ApprovalStatus) (*models.Job, error) {
	res := s.DB.Model(&models.Job{}).Where("id = ?", id).Update("approval", status)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetJob(id)
}

// IncrementView is a single UPDATE expression here; the hosted backend
// can only do read-then-write (see SupabaseStore).
func (s *GormStore) IncrementView(id uint) error {
	res := s.DB.Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListApplications(userID uint, jobID *uint) ([]models.Application, error) {
	q := s.DB.Where("user_id = ?", userID)
	if jobID != nil {
		q = q.Where("job_id = ?", *jobID)
	}
	var apps []models.Application
	if err := q.Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (s *GormStore) CreateApplication(userID, jobID uint, method models.ContactMethod) (*models.Application, error) {
	app := &models.Application{UserID: userID, JobID: jobID, Method: method}
	if err := s.DB.Create(app).Error; err != nil {
		return nil, translate(err)
	}
	return app, nil
}

func (s *GormStore) ListSaved(userID uint) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("list saved: %w", err)
	}
	return saved, nil
}

func (s *GormStore) CreateSaved(userID, jobID uint) (*models.SavedJob, error) {
	saved := &models.SavedJob{UserID: userID, JobID: jobID}
	if err := s.DB.Create(saved).Error; err != nil {
		return nil, translate(err)
	}
	return saved, nil
}

func (s *GormStore) DeleteSaved(id uint) error {
	res := s.DB.Delete(&models.SavedJob{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetCompany(id uint) (*models.Company, error) {
	var company models.Company
	if err := s.DB.First(&company, id).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (s *GormStore) ListCategories() ([]models.Category, error) {
	var cats []models.Category
	if err := s.DB.Order("id").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *GormStore) ListLanguages() ([]models.Language, error) {
	var langs []models.Language
	if err := s.DB.Order("id").Find(&langs).Error; err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return langs, nil
}
