package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// JobType is the employment kind of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

// LocationType says where the work happens.
type LocationType string

const (
	LocationRemote LocationType = "remote"
	LocationOnSite LocationType = "on-site"
	LocationHybrid LocationType = "hybrid"
)

// SalaryType is the pay period of the posted range. Negotiable means
// the employer did not disclose numbers.
type SalaryType string

const (
	SalaryHourly     SalaryType = "hourly"
	SalaryMonthly    SalaryType = "monthly"
	SalaryYearly     SalaryType = "yearly"
	SalaryNegotiable SalaryType = "negotiable"
)

// ContactMethod is one channel an applicant can use to reach the employer.
type ContactMethod string

const (
	ContactEmail     ContactMethod = "email"
	ContactPhone     ContactMethod = "phone"
	ContactWhatsapp  ContactMethod = "whatsapp"
	ContactInstagram ContactMethod = "instagram"
	ContactFacebook  ContactMethod = "facebook"
	ContactWebsite   ContactMethod = "website"
)

// ApprovalStatus is the moderation state of a posting. It replaces the
// old nullable-boolean column: pending was NULL, approved was true,
// rejected was false. Making it an enum keeps illegal states out of
// the type system.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// StringSlice stores a list of short strings as a JSON column so we
// don't need a join table for skill tags and attachment URLs.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return errors.New("StringSlice: unsupported column type")
}

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email   string `gorm:"uniqueIndex;not null" json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Company is an employer profile. Verified gates the ability to submit
// new postings.
type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	NameEN   string `gorm:"not null" json:"name_en"`
	NameKO   string `json:"name_ko"`
	Verified bool   `json:"verified"`
	OwnerID  uint   `json:"owner_id"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

// Category is a reference row with localized names.
type Category struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	NameEN string `gorm:"not null" json:"name_en"`
	NameKO string `json:"name_ko"`
}

// Language is a reference row, keyed by ISO-ish code ("en", "ko", ...).
type Language struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Code   string `gorm:"uniqueIndex;not null" json:"code"`
	NameEN string `json:"name_en"`
	NameKO string `json:"name_ko"`
}

// JobLanguage is one required-language entry embedded on a posting.
type JobLanguage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	JobID       uint   `gorm:"index;not null" json:"job_id"`
	Code        string `gorm:"not null" json:"code"`
	Proficiency string `json:"proficiency"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign Keys
	CompanyID  uint `json:"company_id"`
	CategoryID uint `json:"category_id"`
	UserID     uint `json:"user_id"`

	// Association: GORM needs Preload() to fill this
	Company Company `json:"company"`

	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	JobType      JobType      `gorm:"type:varchar(16);index" json:"job_type"`
	LocationType LocationType `gorm:"type:varchar(16);index" json:"location_type"`
	Location     string       `json:"location"`
	MapLink      string       `json:"map_link"`

	SalaryType SalaryType `gorm:"type:varchar(16)" json:"salary_type"`
	SalaryMin  *int64     `json:"salary_min"`
	SalaryMax  *int64     `json:"salary_max"`

	Experience string        `json:"experience"`
	Languages  []JobLanguage `json:"languages,omitempty"`
	Skills     StringSlice   `gorm:"type:text" json:"skills"`

	// Contact channels, each optional. An empty value means the
	// employer did not offer that channel.
	ContactEmailAddr string `json:"contact_email"`
	ContactPhoneNum  string `json:"contact_phone"`
	ContactWhatsApp  string `json:"contact_whatsapp"`
	ContactInsta     string `json:"contact_instagram"`
	ContactFB        string `json:"contact_facebook"`
	ContactSite      string `json:"contact_website"`

	Deadline    *time.Time  `json:"deadline"`
	Attachments StringSlice `gorm:"type:text" json:"attachments"`
	CoverImage  string      `json:"cover_image"`

	ViewCount int64 `json:"view_count"`

	Approval ApprovalStatus `gorm:"type:varchar(16);default:'pending';index" json:"approval"`
}

// ContactValue returns the posting's value for the given channel, or
// "" when the employer did not provide one.
func (j *Job) ContactValue(m ContactMethod) string {
	switch m {
	case ContactEmail:
		return j.ContactEmailAddr
	case ContactPhone:
		return j.ContactPhoneNum
	case ContactWhatsapp:
		return j.ContactWhatsApp
	case ContactInstagram:
		return j.ContactInsta
	case ContactFacebook:
		return j.ContactFB
	case ContactWebsite:
		return j.ContactSite
	}
	return ""
}

// Application records that a user invoked one contact method on one
// job. The composite unique index is what makes apply-once safe even
// when two requests race: the second insert fails with a duplicate-key
// error and the tracker treats that as success.
type Application struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	UserID    uint          `gorm:"uniqueIndex:idx_application_user_job_method;not null" json:"user_id"`
	JobID     uint          `gorm:"uniqueIndex:idx_application_user_job_method;not null" json:"job_id"`
	Method    ContactMethod `gorm:"type:varchar(16);uniqueIndex:idx_application_user_job_method;not null" json:"method"`
}

// SavedJob is a bookmark. Same uniqueness story as Application, on
// (user, job). Un-saving deletes the row outright; saving again later
// creates a fresh row with a new id and timestamp.
type SavedJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"uniqueIndex:idx_saved_user_job;not null" json:"user_id"`
	JobID     uint      `gorm:"uniqueIndex:idx_saved_user_job;not null" json:"job_id"`
}
