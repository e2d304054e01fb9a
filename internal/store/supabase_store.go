package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	supabase "github.com/nedpals/supabase-go"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
)

// SupabaseStore talks to the hosted backend through the supabase SDK.
// The PostgREST filter language is narrower than SQL, so anything it
// cannot express (the deadline predicate) is finished client-side.
type SupabaseStore struct {
	client *supabase.Client
}

func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}
	return &SupabaseStore{client: supabase.CreateClient(url, key)}, nil
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func isDuplicateErr(err error) bool {
	// PostgREST reports unique violations with the Postgres 23505 code.
	return err != nil && (strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key"))
}

func (s *SupabaseStore) ListJobs(f JobFilter) ([]models.Job, error) {
	// PostgREST filter chaining is awkward to build conditionally, and
	// the fine-grained search predicate runs in memory anyway, so the
	// coarse filter is applied client-side too.
	var jobs []models.Job
	if err := s.client.DB.From("job").Select("*").Execute(&jobs); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	kept := jobs[:0]
	for _, j := range jobs {
		if f.Approval != nil && j.Approval != *f.Approval {
			continue
		}
		if f.CategoryID != nil && j.CategoryID != *f.CategoryID {
			continue
		}
		if f.CompanyID != nil && j.CompanyID != *f.CompanyID {
			continue
		}
		if f.UserID != nil && j.UserID != *f.UserID {
			continue
		}
		if f.HiddenBefore != nil && j.Deadline != nil && j.Deadline.Before(*f.HiddenBefore) {
			continue
		}
		kept = append(kept, j)
	}
	jobs = kept

	// attach required-language entries so the language filter works
	var langs []models.JobLanguage
	if err := s.client.DB.From("job_language").Select("*").Execute(&langs); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	byJob := make(map[uint][]models.JobLanguage, len(langs))
	for _, l := range langs {
		byJob[l.JobID] = append(byJob[l.JobID], l)
	}
	for i := range jobs {
		jobs[i].Languages = byJob[jobs[i].ID]
	}

	// newest first, matching the Postgres backend's ordering
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
	return jobs, nil
}

func (s *SupabaseStore) GetJob(id uint) (*models.Job, error) {
	var jobs []models.Job
	err := s.client.DB.From("job").Select("*").Eq("id", itoa(id)).Execute(&jobs)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if len(jobs) == 0 {
		return nil, ErrNotFound
	}
	langs, err := s.loadLanguages(jobs[0].ID)
	if err != nil {
		return nil, err
	}
	jobs[0].Languages = langs
	return &jobs[0], nil
}

// jobColumns builds the PostgREST payload for the job table. Only real
// columns go over the wire: the identity column, timestamps and the
// company/language relations are not columns, and PostgREST rejects
// unknown keys.
func jobColumns(job *models.Job) map[string]interface{} {
	return map[string]interface{}{
		"company_id":        job.CompanyID,
		"category_id":       job.CategoryID,
		"user_id":           job.UserID,
		"title":             job.Title,
		"description":       job.Description,
		"job_type":          job.JobType,
		"location_type":     job.LocationType,
		"location":          job.Location,
		"map_link":          job.MapLink,
		"salary_type":       job.SalaryType,
		"salary_min":        job.SalaryMin,
		"salary_max":        job.SalaryMax,
		"experience":        job.Experience,
		"skills":            job.Skills,
		"contact_email":     job.ContactEmailAddr,
		"contact_phone":     job.ContactPhoneNum,
		"contact_whatsapp":  job.ContactWhatsApp,
		"contact_instagram": job.ContactInsta,
		"contact_facebook":  job.ContactFB,
		"contact_website":   job.ContactSite,
		"deadline":          job.Deadline,
		"attachments":       job.Attachments,
		"cover_image":       job.CoverImage,
		"view_count":        job.ViewCount,
		"approval":          job.Approval,
	}
}

func languageRows(jobID uint, langs []models.JobLanguage) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(langs))
	for _, l := range langs {
		rows = append(rows, map[string]interface{}{
			"job_id":      jobID,
			"code":        l.Code,
			"proficiency": l.Proficiency,
		})
	}
	return rows
}

// replaceLanguages makes the stored job_language rows match the given
// list exactly: old entries are deleted, not merely upserted over.
func (s *SupabaseStore) replaceLanguages(jobID uint, langs []models.JobLanguage) error {
	if jobID == 0 {
		return nil
	}
	if err := s.client.DB.From("job_language").Delete().Eq("job_id", itoa(jobID)).Execute(nil); err != nil {
		return fmt.Errorf("replace languages: %w", err)
	}
	if len(langs) == 0 {
		return nil
	}
	if err := s.client.DB.From("job_language").Insert(languageRows(jobID, langs)).Execute(nil); err != nil {
		return fmt.Errorf("replace languages: %w", err)
	}
	return nil
}

func (s *SupabaseStore) loadLanguages(jobID uint) ([]models.JobLanguage, error) {
	var langs []models.JobLanguage
	err := s.client.DB.From("job_language").Select("*").Eq("job_id", itoa(jobID)).Execute(&langs)
	if err != nil {
		return nil, fmt.Errorf("load languages: %w", err)
	}
	return langs, nil
}

func (s *SupabaseStore) CreateJob(job *models.Job) error {
	var created []models.Job
	if err := s.client.DB.From("job").Insert(jobColumns(job)).Execute(&created); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	if len(created) > 0 {
		langs := job.Languages
		*job = created[0]
		job.Languages = langs
	}
	return s.replaceLanguages(job.ID, job.Languages)
}

func (s *SupabaseStore) UpdateJob(job *models.Job) error {
	var updated []models.Job
	err := s.client.DB.From("job").Update(jobColumns(job)).Eq("id", itoa(job.ID)).Execute(&updated)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if len(updated) == 0 {
		return ErrNotFound
	}
	return s.replaceLanguages(job.ID, job.Languages)
}

func (s *SupabaseStore) DeleteJob(id uint) error {
	if err := s.client.DB.From("job").Delete().Eq("id", itoa(id)).Execute(nil); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *SupabaseStore) UpdateJobApproval(id uint, status models.ApprovalStatus) (*models.Job, error) {
	patch := map[string]interface{}{"approval": string(status)}
	var updated []models.Job
	err := s.client.DB.From("job").Update(patch).Eq("id", itoa(id)).Execute(&updated)
	if err != nil {
		return nil, fmt.Errorf("update approval: %w", err)
	}
	if len(updated) == 0 {
		return nil, ErrNotFound
	}
	return &updated[0], nil
}

// IncrementView is read-then-write on this backend. Last write wins;
// a lost increment under concurrent views is acceptable for a counter
// that only feeds display.
func (s *SupabaseStore) IncrementView(id uint) error {
	job, err := s.GetJob(id)
	if err != nil {
		return err
	}
	patch := map[string]interface{}{"view_count": job.ViewCount + 1}
	var updated []models.Job
	err = s.client.DB.From("job").Update(patch).Eq("id", itoa(id)).Execute(&updated)
	if err != nil {
		return fmt.Errorf("increment view: %w", err)
	}
	return nil
}

func (s *SupabaseStore) ListApplications(userID uint, jobID *uint) ([]models.Application, error) {
	var apps []models.Application
	var err error
	if jobID != nil {
		err = s.client.DB.From("job_application").Select("*").
			Eq("user_id", itoa(userID)).Eq("job_id", itoa(*jobID)).Execute(&apps)
	} else {
		err = s.client.DB.From("job_application").Select("*").
			Eq("user_id", itoa(userID)).Execute(&apps)
	}
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (s *SupabaseStore) CreateApplication(userID, jobID uint, method models.ContactMethod) (*models.Application, error) {
	app := models.Application{UserID: userID, JobID: jobID, Method: method}
	payload := map[string]interface{}{"user_id": userID, "job_id": jobID, "method": method}
	var created []models.Application
	if err := s.client.DB.From("job_application").Insert(payload).Execute(&created); err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	if len(created) == 0 {
		return &app, nil
	}
	return &created[0], nil
}

func (s *SupabaseStore) ListSaved(userID uint) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := s.client.DB.From("job_saved").Select("*").Eq("user_id", itoa(userID)).Execute(&saved)
	if err != nil {
		return nil, fmt.Errorf("list saved: %w", err)
	}
	return saved, nil
}

func (s *SupabaseStore) CreateSaved(userID, jobID uint) (*models.SavedJob, error) {
	row := models.SavedJob{UserID: userID, JobID: jobID}
	payload := map[string]interface{}{"user_id": userID, "job_id": jobID}
	var created []models.SavedJob
	if err := s.client.DB.From("job_saved").Insert(payload).Execute(&created); err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create saved: %w", err)
	}
	if len(created) == 0 {
		return &row, nil
	}
	return &created[0], nil
}

func (s *SupabaseStore) DeleteSaved(id uint) error {
	if err := s.client.DB.From("job_saved").Delete().Eq("id", itoa(id)).Execute(nil); err != nil {
		return fmt.Errorf("delete saved: %w", err)
	}
	return nil
}

func (s *SupabaseStore) GetCompany(id uint) (*models.Company, error) {
	var companies []models.Company
	err := s.client.DB.From("companies").Select("*").Eq("id", itoa(id)).Execute(&companies)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if len(companies) == 0 {
		return nil, ErrNotFound
	}
	return &companies[0], nil
}

func (s *SupabaseStore) ListCategories() ([]models.Category, error) {
	var cats []models.Category
	if err := s.client.DB.From("job_category").Select("*").Execute(&cats); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *SupabaseStore) ListLanguages() ([]models.Language, error) {
	var langs []models.Language
	if err := s.client.DB.From("job_language").Select("*").Execute(&langs); err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return langs, nil
}
