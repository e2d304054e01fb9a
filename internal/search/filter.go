package search

import (
	"strings"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
)

// Spec is one search request. Dimensions are AND-combined; the values
// inside a dimension are OR-combined. An empty set means "don't filter
// on this dimension".
type Spec struct {
	Query            string
	CategoryID       *uint
	JobTypes         []models.JobType
	LocationTypes    []models.LocationType
	ExperienceLevels []string
	LanguageCodes    []string
	SalaryMin        *int64
	SalaryMax        *int64
}

// Filter reduces the candidate set to the jobs matching the spec.
// Pure: input order is preserved and the input slice is not mutated.
func Filter(jobs []models.Job, spec Spec) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if Matches(&job, spec) {
			out = append(out, job)
		}
	}
	return out
}

// Matches reports whether a single job passes every dimension.
func Matches(job *models.Job, spec Spec) bool {
	return matchesQuery(job, spec.Query) &&
		matchesCategory(job, spec.CategoryID) &&
		matchesJobType(job, spec.JobTypes) &&
		matchesLocationType(job, spec.LocationTypes) &&
		matchesExperience(job, spec.ExperienceLevels) &&
		matchesLanguage(job, spec.LanguageCodes) &&
		matchesSalaryMin(job, spec.SalaryMin) &&
		matchesSalaryMax(job, spec.SalaryMax)
}

func matchesQuery(job *models.Job, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{
		job.Title,
		job.Description,
		job.Location,
		job.Company.NameEN,
		job.Company.NameKO,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesCategory(job *models.Job, id *uint) bool {
	return id == nil || job.CategoryID == *id
}

func matchesJobType(job *models.Job, types []models.JobType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if job.JobType == t {
			return true
		}
	}
	return false
}

func matchesLocationType(job *models.Job, types []models.LocationType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if job.LocationType == t {
			return true
		}
	}
	return false
}

func matchesExperience(job *models.Job, levels []string) bool {
	if len(levels) == 0 {
		return true
	}
	for _, l := range levels {
		if job.Experience == l {
			return true
		}
	}
	return false
}

func matchesLanguage(job *models.Job, codes []string) bool {
	if len(codes) == 0 {
		return true
	}
	for _, entry := range job.Languages {
		for _, c := range codes {
			if entry.Code == c {
				return true
			}
		}
	}
	return false
}

// Salary semantics: a negotiable posting, or one that discloses no
// numbers at all, can never be excluded by a salary filter. Listings
// that stayed silent on pay are not hidden from salary searches.
func salaryExempt(job *models.Job) bool {
	return job.SalaryType == models.SalaryNegotiable ||
		(job.SalaryMin == nil && job.SalaryMax == nil)
}

func matchesSalaryMin(job *models.Job, min *int64) bool {
	if min == nil || salaryExempt(job) {
		return true
	}
	// effective upper bound: max when present, else min
	upper := job.SalaryMax
	if upper == nil {
		upper = job.SalaryMin
	}
	return *upper >= *min
}

func matchesSalaryMax(job *models.Job, max *int64) bool {
	if max == nil || salaryExempt(job) {
		return true
	}
	// effective lower bound: min when present, else max
	lower := job.SalaryMin
	if lower == nil {
		lower = job.SalaryMax
	}
	return *lower <= *max
}
