package audit

import (
	"sort"
	"sync"
)

// Report accumulates the repositories with paused Dependabot, grouped by organization.
// It is safe for concurrent use.
type Report struct {
	mu      sync.Mutex
	entries map[string][]string
}

// NewReport returns an empty Report.
func NewReport() *Report {
	return &Report{entries: map[string][]string{}}
}

// Add appends the full name of the specified repo to the entry for the org.
func (r *Report) Add(orgName string, repo *Repo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[orgName] = append(r.entries[orgName], repo.FullName)
}

// Entries returns a copy of the organization to repository mapping. Organizations without
// paused repositories never appear in it.
func (r *Report) Entries() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make(map[string][]string, len(r.entries))
	for org, repos := range r.entries {
		entries[org] = append([]string(nil), repos...)
	}

	return entries
}

// Orgs returns the organizations present in the report in alphanumeric order.
func (r *Report) Orgs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	orgs := make([]string, 0, len(r.entries))
	for org := range r.entries {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)

	return orgs
}

// Len returns the total number of repositories in the report.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, repos := range r.entries {
		n += len(repos)
	}
	return n
}
