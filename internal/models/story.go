package models

import "github.com/google/uuid"

// UserStory is a unit of functionality with a priority and a story-point
// estimate. It owns an ordered list of tasks and points back at the sprint
// that owns it.
type UserStory struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	StoryPoints int

	tasks  []*Task
	parent *Sprint
}

// NewUserStory creates a story with a fresh ID and no tasks.
func NewUserStory(title, description string, priority Priority, storyPoints int) *UserStory {
	return &UserStory{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Priority:    priority,
		StoryPoints: storyPoints,
	}
}

// Tasks returns the story's tasks in insertion order. The returned slice is
// the live backing store; callers must not mutate it.
func (u *UserStory) Tasks() []*Task {
	return u.tasks
}

// TaskByID finds a task within this story.
func (u *UserStory) TaskByID(id string) *Task {
	for _, task := range u.tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

// ParentSprint returns the sprint owning this story, or nil.
func (u *UserStory) ParentSprint() *Sprint {
	return u.parent
}

// AddTask appends a task and sets its parent back-pointer.
func (u *UserStory) AddTask(task *Task) {
	u.tasks = append(u.tasks, task)
	task.parent = u
}

// RemoveTask removes a task by identity, clearing its back-pointer and its
// assignment. It reports whether a removal occurred.
func (u *UserStory) RemoveTask(task *Task) bool {
	for i, candidate := range u.tasks {
		if candidate.ID == task.ID {
			u.tasks = append(u.tasks[:i], u.tasks[i+1:]...)
			candidate.SetAssignee(nil)
			if candidate.parent == u {
				candidate.parent = nil
			}
			return true
		}
	}
	return false
}

// CompletionPercentage is the share of DONE tasks, floored to an integer.
// A story with no tasks reports 0.
func (u *UserStory) CompletionPercentage() int {
	if len(u.tasks) == 0 {
		return 0
	}
	done := 0
	for _, task := range u.tasks {
		if task.Status == StatusDone {
			done++
		}
	}
	return done * 100 / len(u.tasks)
}

// Copy returns a clone of the story's own fields, preserving the ID and
// carrying no tasks or parent link.
func (u *UserStory) Copy() *UserStory {
	return &UserStory{
		ID:          u.ID,
		Title:       u.Title,
		Description: u.Description,
		Priority:    u.Priority,
		StoryPoints: u.StoryPoints,
	}
}

// DeepCopy clones the story and all of its tasks. Task assignees are left
// unset on the copies.
func (u *UserStory) DeepCopy() *UserStory {
	copied := u.Copy()
	for _, task := range u.tasks {
		copied.AddTask(task.Copy())
	}
	return copied
}

// UpdateFrom replaces the story's own fields from another story. The ID,
// task list, and parent link are untouched.
func (u *UserStory) UpdateFrom(other *UserStory) {
	if other == nil {
		return
	}
	u.Title = other.Title
	u.Description = other.Description
	u.Priority = other.Priority
	u.StoryPoints = other.StoryPoints
}
