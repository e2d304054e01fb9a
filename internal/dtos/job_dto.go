package dtos

import "time"

// JobSubmissionRequest is what an employer posts to create a listing.
// Every submission starts pending, whatever the payload says.
type JobSubmissionRequest struct {
	CompanyID   uint   `json:"company_id" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`

	JobType      string `json:"job_type" binding:"required"`
	LocationType string `json:"location_type" binding:"required"`
	Location     string `json:"location"`
	MapLink      string `json:"map_link"`

	SalaryType string `json:"salary_type" binding:"required"`
	SalaryMin  *int64 `json:"salary_min"`
	SalaryMax  *int64 `json:"salary_max"`

	Experience string             `json:"experience"`
	Languages  []LanguageEntry    `json:"languages"`
	Skills     []string           `json:"skills"`
	Contacts   map[string]string  `json:"contacts"`

	Deadline    *time.Time `json:"deadline"`
	Attachments []string   `json:"attachments"`
	CoverImage  string     `json:"cover_image"`
}

// LanguageEntry is one required-language item on a submission.
type LanguageEntry struct {
	Code        string `json:"code" binding:"required"`
	Proficiency string `json:"proficiency"`
}

// JobUpdateRequest is an owner content edit. Edits do not touch the
// approval state.
type JobUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	CategoryID   *uint   `json:"category_id"`
	JobType      *string `json:"job_type"`
	LocationType *string `json:"location_type"`
	Location     *string `json:"location"`
	MapLink      *string `json:"map_link"`

	SalaryType *string `json:"salary_type"`
	SalaryMin  *int64  `json:"salary_min"`
	SalaryMax  *int64  `json:"salary_max"`

	Experience  *string          `json:"experience"`
	Languages   *[]LanguageEntry `json:"languages"`
	Skills      *[]string        `json:"skills"`
	Contacts    *map[string]string `json:"contacts"`
	Deadline    *time.Time       `json:"deadline"`
	Attachments *[]string        `json:"attachments"`
	CoverImage  *string          `json:"cover_image"`
}

// ListJobsQuery is the query-string shape of a listing request.
// Multi-value dimensions arrive comma-separated.
type ListJobsQuery struct {
	Query         string `form:"q"`
	JobTypes      string `form:"job_types"`
	LocationTypes string `form:"location_types"`
	Experience    string `form:"experience"`
	Languages     string `form:"languages"`
	SalaryMin     *int64 `form:"salary_min"`
	SalaryMax     *int64 `form:"salary_max"`
	CategoryID    *uint  `form:"category"`
	Lang          string `form:"lang"`
	ActiveOnly    bool   `form:"active_only"`
	Session       string `form:"session"`
}

// ApplyRequest invokes one contact method on a job.
type ApplyRequest struct {
	Method string `json:"method" binding:"required"`
}

// ApprovalRequest is a single admin verdict.
type ApprovalRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// BulkApprovalRequest applies one verdict to many jobs. Items are
// processed independently; the response carries per-id outcomes.
type BulkApprovalRequest struct {
	JobIDs   []uint `json:"job_ids" binding:"required"`
	Decision string `json:"decision" binding:"required"`
}
