package github

import "context"

// MockProvider serves a fixed issue set. It stands in for the live client
// when no API token is configured, so the import flow can be exercised
// without network access.
type MockProvider struct{}

func (MockProvider) ListIssues(_ context.Context, _, _ string) ([]Issue, error) {
	return []Issue{
		{
			ID:     1,
			Title:  "Implement login functionality",
			Body:   "As a user, I want to be able to log in to the system",
			State:  "open",
			URL:    "https://github.com/mock/issue/1",
			Labels: []string{"priority:high", "points:5"},
		},
		{
			ID:     2,
			Title:  "Fix UI layout on mobile",
			Body:   "The UI is broken on mobile devices",
			State:  "open",
			URL:    "https://github.com/mock/issue/2",
			Labels: []string{"priority:medium", "points:3", "bug"},
		},
		{
			ID:     3,
			Title:  "Add user profile page",
			Body:   "Create a page where users can view and edit their profile",
			State:  "open",
			URL:    "https://github.com/mock/issue/3",
			Labels: []string{"priority:low", "points:8"},
		},
	}, nil
}
