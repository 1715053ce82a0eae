// Package api defines the JSON wire types for the HTTP interface and the
// projections from the entity graph onto them. The in-memory graph is
// cyclic (sprint <-> story <-> task <-> member); the wire types are strict
// trees with back-references and member task lists suppressed.
package api

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" yaml:"error"`
	Code  string `json:"code,omitempty" yaml:"code,omitempty"`
}

// MemberSummary is the nested assignee representation on a task. The full
// member record, with its assigned-task list, is never embedded.
type MemberSummary struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TaskResponse is a task as served over the wire. Status uses the external
// spelling, so TO_DO goes out as "TODO".
type TaskResponse struct {
	ID                 string         `json:"id" yaml:"id"`
	Title              string         `json:"title" yaml:"title"`
	Description        string         `json:"description" yaml:"description"`
	Status             string         `json:"status" yaml:"status"`
	GithubIssueURL     string         `json:"githubIssueUrl,omitempty" yaml:"githubIssueUrl,omitempty"`
	AssignedTeamMember *MemberSummary `json:"assignedTeamMember,omitempty" yaml:"assignedTeamMember,omitempty"`
}

type StoryResponse struct {
	ID                   string         `json:"id" yaml:"id"`
	Title                string         `json:"title" yaml:"title"`
	Description          string         `json:"description" yaml:"description"`
	Priority             string         `json:"priority" yaml:"priority"`
	StoryPoints          int            `json:"storyPoints" yaml:"storyPoints"`
	CompletionPercentage int            `json:"completionPercentage" yaml:"completionPercentage"`
	Tasks                []TaskResponse `json:"tasks" yaml:"tasks"`
}

type SprintResponse struct {
	ID                   string          `json:"id" yaml:"id"`
	Name                 string          `json:"name" yaml:"name"`
	StartDate            string          `json:"startDate" yaml:"startDate"`
	EndDate              string          `json:"endDate" yaml:"endDate"`
	Goal                 string          `json:"goal" yaml:"goal"`
	Active               bool            `json:"active" yaml:"active"`
	TotalStoryPoints     int             `json:"totalStoryPoints" yaml:"totalStoryPoints"`
	CompletionPercentage int             `json:"completionPercentage" yaml:"completionPercentage"`
	UserStories          []StoryResponse `json:"userStories" yaml:"userStories"`
}

type MemberResponse struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Email            string `json:"email" yaml:"email"`
	ExternalUsername string `json:"externalUsername" yaml:"externalUsername"`
	Role             string `json:"role" yaml:"role"`
}

// IssueResponse is an external issue as listed by the adapter endpoint.
type IssueResponse struct {
	ID          int64    `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	State       string   `json:"state" yaml:"state"`
	URL         string   `json:"url" yaml:"url"`
	Assignee    string   `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Labels      []string `json:"labels" yaml:"labels"`
}

// ImportResponse summarizes an issue import.
type ImportResponse struct {
	Success        bool   `json:"success" yaml:"success"`
	Message        string `json:"message" yaml:"message"`
	StoriesCreated int    `json:"storiesCreated" yaml:"storiesCreated"`
	TasksCreated   int    `json:"tasksCreated" yaml:"tasksCreated"`
}

// Request bodies use pointer fields so merge-update handlers can tell an
// absent field from a zero value.

type SprintRequest struct {
	Name      *string `json:"name"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Goal      *string `json:"goal"`
	Active    *bool   `json:"active"`
}

type StoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	StoryPoints *int    `json:"storyPoints"`
}

type TaskRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Status               *string `json:"status"`
	AssignedTeamMemberID *string `json:"assignedTeamMemberId"`
}

type MemberRequest struct {
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	ExternalUsername *string `json:"externalUsername"`
	Role             *string `json:"role"`
}
