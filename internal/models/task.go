package models

import "github.com/google/uuid"

// Task is an atomic unit of work. It points back at its owning story and
// optionally at the team member assigned to it; SetAssignee keeps that link
// symmetric with the member's task list.
type Task struct {
	ID             string
	Title          string
	Description    string
	Status         TaskStatus
	GithubIssueURL string

	assignee *TeamMember
	parent   *UserStory
}

// NewTask creates a task with a fresh ID in TO_DO state.
func NewTask(title, description string) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusToDo,
	}
}

// Assignee returns the assigned team member, or nil.
func (t *Task) Assignee() *TeamMember {
	return t.assignee
}

// ParentStory returns the story owning this task, or nil.
func (t *Task) ParentStory() *UserStory {
	return t.parent
}

// SetAssignee reassigns the task. The task is removed from the previous
// member's list and inserted into the new member's list in one step; passing
// nil unassigns.
func (t *Task) SetAssignee(member *TeamMember) {
	if t.assignee == member {
		return
	}
	if t.assignee != nil {
		t.assignee.dropTask(t)
	}
	t.assignee = member
	if member != nil {
		member.adoptTask(t)
	}
}

// IsDone reports whether the task's status is DONE.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// Copy returns a clone of the task's own fields, preserving the ID. The
// assignee and parent links are left unset so the copy holds no references
// into the original graph.
func (t *Task) Copy() *Task {
	return &Task{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		GithubIssueURL: t.GithubIssueURL,
	}
}

// UpdateFrom merges fields from another task. Zero-valued fields on other
// mean "no change" so a partial update cannot blank data that was never
// sent. A non-nil assignee that differs rewrites the assignment with full
// back-reference bookkeeping. The ID and parent link are untouched.
func (t *Task) UpdateFrom(other *Task) {
	if other == nil {
		return
	}
	if other.Title != "" {
		t.Title = other.Title
	}
	if other.Description != "" {
		t.Description = other.Description
	}
	if other.Status != "" {
		t.Status = other.Status
	}
	if other.GithubIssueURL != "" {
		t.GithubIssueURL = other.GithubIssueURL
	}
	if other.assignee != nil && other.assignee != t.assignee {
		t.SetAssignee(other.assignee)
	}
}
