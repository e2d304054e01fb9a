package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
)

func i64(v int64) *int64 { return &v }

func sampleJobs() []models.Job {
	return []models.Job{
		{
			ID:           1,
			Title:        "Barista",
			Description:  "Morning shifts at a busy cafe",
			Location:     "Seoul",
			JobType:      models.JobTypePartTime,
			LocationType: models.LocationOnSite,
			Experience:   "entry",
			SalaryType:   models.SalaryHourly,
			SalaryMin:    i64(11000),
			Languages:    []models.JobLanguage{{Code: "ko", Proficiency: "conversational"}},
			Company:      models.Company{NameEN: "Bean House", NameKO: "빈하우스"},
		},
		{
			ID:           2,
			Title:        "Backend Engineer",
			Description:  "Go services",
			Location:     "Busan",
			JobType:      models.JobTypeFullTime,
			LocationType: models.LocationHybrid,
			Experience:   "senior",
			SalaryType:   models.SalaryYearly,
			SalaryMin:    i64(60_000_000),
			SalaryMax:    i64(90_000_000),
			Languages:    []models.JobLanguage{{Code: "en", Proficiency: "fluent"}, {Code: "ko"}},
			Company:      models.Company{NameEN: "Keasy", NameKO: "케이지"},
		},
		{
			ID:           3,
			Title:        "English Tutor",
			Description:  "Online lessons",
			JobType:      models.JobTypeFreelance,
			LocationType: models.LocationRemote,
			Experience:   "entry",
			SalaryType:   models.SalaryNegotiable,
			Languages:    []models.JobLanguage{{Code: "en", Proficiency: "native"}},
			Company:      models.Company{NameEN: "TalkTalk"},
		},
	}
}

func ids(jobs []models.Job) []uint {
	out := make([]uint, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestFilterEmptySpecKeepsEverything(t *testing.T) {
	jobs := sampleJobs()
	got := Filter(jobs, Spec{})
	assert.Equal(t, []uint{1, 2, 3}, ids(got), "order must be preserved")
}

func TestFilterFreeText(t *testing.T) {
	jobs := sampleJobs()

	tests := []struct {
		name  string
		query string
		want  []uint
	}{
		{"title match", "barista", []uint{1}},
		{"description match", "go services", []uint{2}},
		{"location match", "busan", []uint{2}},
		{"company english name", "talktalk", []uint{3}},
		{"company korean name", "빈하우스", []uint{1}},
		{"case insensitive", "BACKEND", []uint{2}},
		{"no match", "plumber", []uint{}},
		{"blank query matches all", "   ", []uint{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(jobs, Spec{Query: tt.query})))
		})
	}
}

func TestFilterDimensionsAreIntersected(t *testing.T) {
	jobs := sampleJobs()

	// full-time AND english: only job 2 matches both, even though
	// job 3 matches the language alone
	got := Filter(jobs, Spec{
		JobTypes:      []models.JobType{models.JobTypeFullTime},
		LanguageCodes: []string{"en"},
	})
	assert.Equal(t, []uint{2}, ids(got))

	// values inside a dimension are OR-combined
	got = Filter(jobs, Spec{
		JobTypes: []models.JobType{models.JobTypePartTime, models.JobTypeFreelance},
	})
	assert.Equal(t, []uint{1, 3}, ids(got))
}

func TestFilterExperienceAndLocationType(t *testing.T) {
	jobs := sampleJobs()

	got := Filter(jobs, Spec{ExperienceLevels: []string{"entry"}})
	assert.Equal(t, []uint{1, 3}, ids(got))

	got = Filter(jobs, Spec{LocationTypes: []models.LocationType{models.LocationRemote, models.LocationHybrid}})
	assert.Equal(t, []uint{2, 3}, ids(got))
}

func TestSalaryFilterAsymmetry(t *testing.T) {
	negotiable := models.Job{ID: 10, SalaryType: models.SalaryNegotiable}
	silent := models.Job{ID: 11, SalaryType: models.SalaryMonthly}
	minOnly := models.Job{ID: 12, SalaryType: models.SalaryMonthly, SalaryMin: i64(3_000_000)}
	maxOnly := models.Job{ID: 13, SalaryType: models.SalaryMonthly, SalaryMax: i64(2_500_000)}
	ranged := models.Job{ID: 14, SalaryType: models.SalaryMonthly, SalaryMin: i64(2_000_000), SalaryMax: i64(4_000_000)}

	tests := []struct {
		name string
		job  models.Job
		spec Spec
		want bool
	}{
		{"negotiable always passes a min filter", negotiable, Spec{SalaryMin: i64(5_000_000)}, true},
		{"negotiable always passes a max filter", negotiable, Spec{SalaryMax: i64(1)}, true},
		{"undisclosed salary always passes", silent, Spec{SalaryMin: i64(5_000_000)}, true},
		{"min-only fails a higher filter min", minOnly, Spec{SalaryMin: i64(4_000_000)}, false},
		{"min-only passes a lower filter min", minOnly, Spec{SalaryMin: i64(2_000_000)}, true},
		{"min-only acts as its own lower bound for max", minOnly, Spec{SalaryMax: i64(2_000_000)}, false},
		{"max-only acts as its own upper bound for min", maxOnly, Spec{SalaryMin: i64(3_000_000)}, false},
		{"max-only passes a reachable min", maxOnly, Spec{SalaryMin: i64(2_000_000)}, true},
		{"range overlaps filter window", ranged, Spec{SalaryMin: i64(3_000_000), SalaryMax: i64(5_000_000)}, true},
		{"range below filter min", ranged, Spec{SalaryMin: i64(5_000_000)}, false},
		{"range above filter max", ranged, Spec{SalaryMax: i64(1_000_000)}, false},
		// degenerate input is evaluated literally, not rejected
		{"inverted filter window excludes ranged job", ranged, Spec{SalaryMin: i64(5_000_000), SalaryMax: i64(1_000_000)}, false},
		{"inverted filter window still passes negotiable", negotiable, Spec{SalaryMin: i64(5_000_000), SalaryMax: i64(1_000_000)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(&tt.job, tt.spec))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	jobs := sampleJobs()
	_ = Filter(jobs, Spec{Query: "barista"})
	require.Len(t, jobs, 3)
	assert.Equal(t, []uint{1, 2, 3}, ids(jobs))
}
