package services

import (
	"sort"
	"sync"
	"time"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

// memStore is an in-memory store.Store for service tests. It enforces
// the same uniqueness rules as the real backends and offers a few
// failure-injection knobs.
type memStore struct {
	mu        sync.Mutex
	jobs      map[uint]*models.Job
	companies map[uint]*models.Company
	apps      map[uint]*models.Application
	saved     map[uint]*models.SavedJob
	nextID    uint
	clock     time.Time

	// failure injection
	createApplicationErr error
	updateApprovalErr    map[uint]error
	// hideSaved makes ListSaved lie, to simulate the racing duplicate
	// toggle that slips past the read-before-write check
	hideSaved bool

	incrementViewCalls int
	approvalWrites     int
}

func newMemStore() *memStore {
	return &memStore{
		jobs:              map[uint]*models.Job{},
		companies:         map[uint]*models.Company{},
		apps:              map[uint]*models.Application{},
		saved:             map[uint]*models.SavedJob{},
		updateApprovalErr: map[uint]error{},
		clock:             time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) addCompany(verified bool) *models.Company {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &models.Company{ID: m.id(), NameEN: "Test Co", Verified: verified}
	m.companies[c.ID] = c
	return c
}

func (m *memStore) addJob(job models.Job) *models.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	job.ID = m.id()
	job.CreatedAt = m.tick()
	m.jobs[job.ID] = &job
	return &job
}

func (m *memStore) ListJobs(f store.JobFilter) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Job
	for _, j := range m.jobs {
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
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (m *memStore) GetJob(id uint) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memStore) CreateJob(job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job.ID = m.id()
	job.CreatedAt = m.tick()
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memStore) UpdateJob(job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memStore) DeleteJob(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *memStore) UpdateJobApproval(id uint, status models.ApprovalStatus) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.updateApprovalErr[id]; ok {
		return nil, err
	}
	j, ok := m.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	m.approvalWrites++
	j.Approval = status
	cp := *j
	return &cp, nil
}

func (m *memStore) IncrementView(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return store.ErrNotFound
	}
	m.incrementViewCalls++
	j.ViewCount++
	return nil
}

func (m *memStore) ListApplications(userID uint, jobID *uint) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Application
	for _, a := range m.apps {
		if a.UserID != userID {
			continue
		}
		if jobID != nil && a.JobID != *jobID {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (m *memStore) CreateApplication(userID, jobID uint, method models.ContactMethod) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createApplicationErr != nil {
		return nil, m.createApplicationErr
	}
	for _, a := range m.apps {
		if a.UserID == userID && a.JobID == jobID && a.Method == method {
			return nil, store.ErrDuplicate
		}
	}
	app := &models.Application{ID: m.id(), CreatedAt: m.tick(), UserID: userID, JobID: jobID, Method: method}
	m.apps[app.ID] = app
	cp := *app
	return &cp, nil
}

func (m *memStore) ListSaved(userID uint) ([]models.SavedJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hideSaved {
		return nil, nil
	}
	var out []models.SavedJob
	for _, s := range m.saved {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (m *memStore) CreateSaved(userID, jobID uint) (*models.SavedJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.saved {
		if s.UserID == userID && s.JobID == jobID {
			return nil, store.ErrDuplicate
		}
	}
	row := &models.SavedJob{ID: m.id(), CreatedAt: m.tick(), UserID: userID, JobID: jobID}
	m.saved[row.ID] = row
	cp := *row
	return &cp, nil
}

func (m *memStore) DeleteSaved(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saved[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.saved, id)
	return nil
}

func (m *memStore) GetCompany(id uint) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) ListCategories() ([]models.Category, error) {
	return []models.Category{{ID: 1, NameEN: "Food & Drink", NameKO: "외식"}}, nil
}

func (m *memStore) ListLanguages() ([]models.Language, error) {
	return []models.Language{
		{ID: 1, Code: "en", NameEN: "English", NameKO: "영어"},
		{ID: 2, Code: "ko", NameEN: "Korean", NameKO: "한국어"},
	}, nil
}
