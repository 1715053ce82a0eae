package models

import (
	"time"

	"github.com/google/uuid"
)

// Sprint is a bounded calendar interval grouping a batch of user stories.
// Stories are owned by the sprint; each story carries a back-pointer that
// AddStory and RemoveStory keep consistent.
type Sprint struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Goal      string
	Active    bool

	stories []*UserStory
}

// NewSprint creates a sprint with a fresh ID and no stories. New sprints
// start inactive.
func NewSprint(name string, startDate, endDate time.Time, goal string) *Sprint {
	return &Sprint{
		ID:        uuid.NewString(),
		Name:      name,
		StartDate: truncateToDay(startDate),
		EndDate:   truncateToDay(endDate),
		Goal:      goal,
	}
}

// Stories returns the sprint's user stories in insertion order. The returned
// slice is the live backing store; callers must not mutate it.
func (s *Sprint) Stories() []*UserStory {
	return s.stories
}

// StoryByID finds a user story within this sprint.
func (s *Sprint) StoryByID(id string) *UserStory {
	for _, story := range s.stories {
		if story.ID == id {
			return story
		}
	}
	return nil
}

// TaskByID finds a task within any story of this sprint.
func (s *Sprint) TaskByID(id string) *Task {
	for _, story := range s.stories {
		if task := story.TaskByID(id); task != nil {
			return task
		}
	}
	return nil
}

// AddStory appends a story and sets its parent back-pointer.
func (s *Sprint) AddStory(story *UserStory) {
	s.stories = append(s.stories, story)
	story.parent = s
}

// RemoveStory removes a story by identity, unassigns its tasks so no team
// member keeps a link to a detached task, and clears the back-pointer. It
// reports whether a removal occurred.
func (s *Sprint) RemoveStory(story *UserStory) bool {
	for i, candidate := range s.stories {
		if candidate.ID == story.ID {
			s.stories = append(s.stories[:i], s.stories[i+1:]...)
			for _, task := range candidate.Tasks() {
				task.SetAssignee(nil)
			}
			if candidate.parent == s {
				candidate.parent = nil
			}
			return true
		}
	}
	return false
}

// AllTasks returns every task across all stories, in story order.
func (s *Sprint) AllTasks() []*Task {
	var tasks []*Task
	for _, story := range s.stories {
		tasks = append(tasks, story.Tasks()...)
	}
	return tasks
}

// TotalStoryPoints sums the story points of all child stories.
func (s *Sprint) TotalStoryPoints() int {
	total := 0
	for _, story := range s.stories {
		total += story.StoryPoints
	}
	return total
}

// CompletionPercentage is the share of DONE tasks across all stories,
// floored to an integer. A sprint with no tasks reports 0.
func (s *Sprint) CompletionPercentage() int {
	total, done := 0, 0
	for _, story := range s.stories {
		for _, task := range story.Tasks() {
			total++
			if task.Status == StatusDone {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return done * 100 / total
}

// OngoingOn reports whether the given day falls within the sprint interval,
// inclusive on both ends.
func (s *Sprint) OngoingOn(day time.Time) bool {
	day = truncateToDay(day)
	return !day.Before(truncateToDay(s.StartDate)) && !day.After(truncateToDay(s.EndDate))
}

// CompletedOn reports whether the given day is past the sprint's end date.
func (s *Sprint) CompletedOn(day time.Time) bool {
	return truncateToDay(day).After(truncateToDay(s.EndDate))
}

// IsOngoing reports whether today falls within the sprint interval.
func (s *Sprint) IsOngoing() bool {
	return s.OngoingOn(time.Now())
}

// IsCompleted reports whether the sprint's end date has passed.
func (s *Sprint) IsCompleted() bool {
	return s.CompletedOn(time.Now())
}

// Copy returns a clone of the sprint's own fields, preserving the ID and
// carrying no stories.
func (s *Sprint) Copy() *Sprint {
	return &Sprint{
		ID:        s.ID,
		Name:      s.Name,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Goal:      s.Goal,
		Active:    s.Active,
	}
}

// DeepCopy clones the sprint and all of its stories and tasks. IDs are
// preserved throughout; task assignees are left unset so the copied graph
// holds no references into the original.
func (s *Sprint) DeepCopy() *Sprint {
	copied := s.Copy()
	for _, story := range s.stories {
		copied.AddStory(story.DeepCopy())
	}
	return copied
}

// UpdateFrom replaces the sprint's own fields from another sprint. The ID
// and the story list are untouched.
func (s *Sprint) UpdateFrom(other *Sprint) {
	if other == nil {
		return
	}
	s.Name = other.Name
	s.StartDate = other.StartDate
	s.EndDate = other.EndDate
	s.Goal = other.Goal
	s.Active = other.Active
}
