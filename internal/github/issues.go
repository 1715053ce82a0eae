// Package github adapts external issue trackers onto the sprint model. The
// Provider interface is the seam: a live client backed by the GitHub REST
// API and a canned mock share it, so the rest of the program never knows
// which one it is talking to.
package github

import "context"

// Issue is the provider-neutral issue record.
type Issue struct {
	ID               int64
	Title            string
	Body             string
	State            string // "open" or "closed"
	URL              string
	AssigneeUsername string
	Labels           []string
}

// Provider lists the issues of a repository.
type Provider interface {
	ListIssues(ctx context.Context, owner, repo string) ([]Issue, error)
}

// HasLabel reports whether the issue carries the given label.
func (i Issue) HasLabel(label string) bool {
	for _, have := range i.Labels {
		if have == label {
			return true
		}
	}
	return false
}
