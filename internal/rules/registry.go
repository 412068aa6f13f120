// Package rules runs static gate-assignment checks over the FIDS feed.
// Each check is an independent filter registered at init time; checks are
// never combined with the reconciliation output.
package rules

import (
	"sort"
	"sync"

	"gatecheck/internal/source"
)

// Flag is one FIDS row caught by a check.
type Flag struct {
	Flight   string `json:"flight,omitempty"`
	Gate     string `json:"gate"`
	Aircraft string `json:"aircraft,omitempty"`
	Warning  string `json:"warning"`
}

// Check is implemented by each static rule.
type Check interface {
	// Name returns the check's unique identifier, used to enable or
	// disable it from configuration.
	Name() string

	// Title returns the section label shown with the check's results.
	Title() string

	// Priority determines report ordering. Lower number = reported first.
	Priority() int

	// Apply filters the feed rows and returns zero or more flags.
	// An empty result is a valid all-clear, not an error.
	Apply(rows []source.FeedRow) []Flag
}

// Registry holds registered checks sorted by priority.
type Registry struct {
	mu     sync.RWMutex
	checks []Check
	sorted bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a check to the registry.
func (r *Registry) Register(c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, c)
	r.sorted = false
}

// Checks returns the registered checks in priority order, restricted to
// the named set when names is non-empty.
func (r *Registry) Checks(names []string) []Check {
	r.mu.Lock()
	if !r.sorted {
		sort.SliceStable(r.checks, func(i, j int) bool {
			return r.checks[i].Priority() < r.checks[j].Priority()
		})
		r.sorted = true
	}
	checks := make([]Check, len(r.checks))
	copy(checks, r.checks)
	r.mu.Unlock()

	if len(names) == 0 {
		return checks
	}

	enabled := make(map[string]bool, len(names))
	for _, n := range names {
		enabled[n] = true
	}
	var out []Check
	for _, c := range checks {
		if enabled[c.Name()] {
			out = append(out, c)
		}
	}
	return out
}
