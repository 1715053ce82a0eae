package github

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client lists issues through the GitHub REST API.
type Client struct {
	rest *gh.Client
}

// NewClient builds a REST client. An empty token yields an unauthenticated
// client, good for public repositories within the anonymous rate limit.
func NewClient(token string) *Client {
	httpClient := http.DefaultClient
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	return &Client{rest: gh.NewClient(httpClient)}
}

// ListIssues fetches all issues of owner/repo, open and closed, following
// pagination. Pull requests come back on the same endpoint and are skipped.
func (c *Client) ListIssues(ctx context.Context, owner, repo string) ([]Issue, error) {
	opts := &gh.IssueListByRepoOptions{
		State:       "all",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var issues []Issue
	for {
		page, resp, err := c.rest.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list issues %s/%s: %w", owner, repo, err)
		}
		for _, item := range page {
			if item.IsPullRequest() {
				continue
			}
			issues = append(issues, fromRESTIssue(item))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return issues, nil
}

func fromRESTIssue(item *gh.Issue) Issue {
	issue := Issue{
		ID:    item.GetID(),
		Title: item.GetTitle(),
		Body:  item.GetBody(),
		State: item.GetState(),
		URL:   item.GetHTMLURL(),
	}
	if assignee := item.GetAssignee(); assignee != nil {
		issue.AssigneeUsername = assignee.GetLogin()
	}
	for _, label := range item.Labels {
		issue.Labels = append(issue.Labels, label.GetName())
	}
	return issue
}
