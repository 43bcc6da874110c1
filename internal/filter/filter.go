// Package filter narrows listed instances on the client side.
package filter

import (
	"github.com/yairfalse/quicklaunch/pkg/resource"
)

// Filter selects instances by tag and state.
type Filter struct {
	includeTags map[string]string
	excludeTags map[string]string
	states      map[string]bool
}

// New creates a Filter. An instance passes when it carries every include
// tag, none of the exclude tags, and (if states is non-empty) is in one of
// the given states.
func New(includeTags, excludeTags map[string]string, states []string) *Filter {
	stateSet := make(map[string]bool, len(states))
	for _, s := range states {
		stateSet[s] = true
	}

	return &Filter{
		includeTags: includeTags,
		excludeTags: excludeTags,
		states:      stateSet,
	}
}

// Match reports whether r passes the filter.
func (f *Filter) Match(r resource.Resource) bool {
	// ALL include tags must match
	for k, v := range f.includeTags {
		if got, ok := r.Labels[k]; !ok || got != v {
			return false
		}
	}

	// ANY exclude tag excludes
	for k, v := range f.excludeTags {
		if got, ok := r.Labels[k]; ok && got == v {
			return false
		}
	}

	if len(f.states) > 0 && !f.states[r.Status] {
		return false
	}
	return true
}

// Apply returns the resources that pass the filter, in their original order.
func (f *Filter) Apply(resources []resource.Resource) []resource.Resource {
	if f.IsEmpty() {
		return resources
	}

	filtered := make([]resource.Resource, 0, len(resources))
	for _, r := range resources {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// IsEmpty returns true if no filters are configured.
func (f *Filter) IsEmpty() bool {
	return len(f.includeTags) == 0 && len(f.excludeTags) == 0 && len(f.states) == 0
}
