package search

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
)

// ResultCache is a read-through cache of filtered listing snapshots,
// keyed by (session, canonical spec). A session is one browsing
// client; two sessions never share entries, so a stale snapshot can
// only ever be shown to the session that fetched it.
type ResultCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	jobs      []models.Job
	expiresAt time.Time
}

func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// CacheKey canonicalizes the spec so that two requests selecting the
// same values in a different order hit the same entry.
func CacheKey(session uuid.UUID, spec Spec) string {
	var b strings.Builder
	b.WriteString(session.String())
	b.WriteString("|q=")
	b.WriteString(strings.ToLower(strings.TrimSpace(spec.Query)))
	if spec.CategoryID != nil {
		fmt.Fprintf(&b, "|cat=%d", *spec.CategoryID)
	}
	b.WriteString("|jt=")
	b.WriteString(sortedJoin(jobTypeStrings(spec.JobTypes)))
	b.WriteString("|lt=")
	b.WriteString(sortedJoin(locationTypeStrings(spec.LocationTypes)))
	b.WriteString("|exp=")
	b.WriteString(sortedJoin(append([]string(nil), spec.ExperienceLevels...)))
	b.WriteString("|lang=")
	b.WriteString(sortedJoin(append([]string(nil), spec.LanguageCodes...)))
	if spec.SalaryMin != nil {
		fmt.Fprintf(&b, "|smin=%d", *spec.SalaryMin)
	}
	if spec.SalaryMax != nil {
		fmt.Fprintf(&b, "|smax=%d", *spec.SalaryMax)
	}
	return b.String()
}

// GetOrLoad returns the cached snapshot for (session, spec) or calls
// load, stores the result and returns it. Expired entries are evicted
// lazily on access.
func (c *ResultCache) GetOrLoad(session uuid.UUID, spec Spec, load func() ([]models.Job, error)) ([]models.Job, error) {
	key := CacheKey(session, spec)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expiresAt) {
		return entry.jobs, nil
	}

	jobs, err := load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{jobs: jobs, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return jobs, nil
}

// InvalidateAll drops every snapshot. Called after any write that
// changes public listings (submission, approval, deletion).
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len reports live (non-expired) entries.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if c.now().Before(e.expiresAt) {
			n++
		}
	}
	return n
}

func sortedJoin(values []string) string {
	sort.Strings(values)
	return strings.Join(values, ",")
}

func jobTypeStrings(types []models.JobType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func locationTypeStrings(types []models.LocationType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
