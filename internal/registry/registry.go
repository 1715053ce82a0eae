// Package registry holds the process-wide set of sprints and team members
// plus the designated current sprint. It is the single owner of the mutable
// entity graph: both front ends (the HTTP server and the terminal menu)
// operate on one Registry and serialize access through its lock.
package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"strack/internal/models"
)

// ErrNotManaged is returned when a sprint passed to SetCurrentSprint is not
// in the registry.
var ErrNotManaged = errors.New("sprint is not managed by this registry")

// Registry owns the mutable sets of sprints and team members. Its methods do
// not lock; callers serialize access via Lock/Unlock for the duration of
// each logical operation.
type Registry struct {
	mu sync.Mutex

	sprints []*models.Sprint
	members []*models.TeamMember
	current *models.Sprint
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Lock acquires the registry's lock. The HTTP layer holds it for the whole
// request, including the save that follows a mutation.
func (r *Registry) Lock() { r.mu.Lock() }

// Unlock releases the registry's lock.
func (r *Registry) Unlock() { r.mu.Unlock() }

// Sprints returns all sprints in insertion order. The returned slice is the
// live backing store; callers must not mutate it.
func (r *Registry) Sprints() []*models.Sprint {
	return r.sprints
}

// AddSprint appends a sprint. It becomes current when no current sprint is
// set, or when the current sprint is inactive and the new one is active.
func (r *Registry) AddSprint(sprint *models.Sprint) {
	r.sprints = append(r.sprints, sprint)
	if r.current == nil || (!r.current.Active && sprint.Active) {
		r.current = sprint
	}
}

// RemoveSprint removes a sprint by identity and reports whether a removal
// occurred. If the removed sprint was current, the first remaining active
// sprint becomes current, else the first remaining sprint, else none.
func (r *Registry) RemoveSprint(sprint *models.Sprint) bool {
	for i, candidate := range r.sprints {
		if candidate.ID == sprint.ID {
			r.sprints = append(r.sprints[:i], r.sprints[i+1:]...)
			for _, task := range candidate.AllTasks() {
				task.SetAssignee(nil)
			}
			if r.current != nil && r.current.ID == sprint.ID {
				r.current = r.pickCurrent()
			}
			return true
		}
	}
	return false
}

func (r *Registry) pickCurrent() *models.Sprint {
	for _, sprint := range r.sprints {
		if sprint.Active {
			return sprint
		}
	}
	if len(r.sprints) > 0 {
		return r.sprints[0]
	}
	return nil
}

// SprintByID finds a sprint, or returns nil.
func (r *Registry) SprintByID(id string) *models.Sprint {
	for _, sprint := range r.sprints {
		if sprint.ID == id {
			return sprint
		}
	}
	return nil
}

// CurrentSprint returns the designated current sprint, or nil.
func (r *Registry) CurrentSprint() *models.Sprint {
	return r.current
}

// SetCurrentSprint designates a managed sprint as current. It fails with
// ErrNotManaged when the sprint is not in the registry.
func (r *Registry) SetCurrentSprint(sprint *models.Sprint) error {
	if sprint == nil || r.SprintByID(sprint.ID) == nil {
		return ErrNotManaged
	}
	r.current = r.SprintByID(sprint.ID)
	return nil
}

// TeamMembers returns all members in insertion order. The returned slice is
// the live backing store; callers must not mutate it.
func (r *Registry) TeamMembers() []*models.TeamMember {
	return r.members
}

// AddTeamMember appends a member.
func (r *Registry) AddTeamMember(member *models.TeamMember) {
	r.members = append(r.members, member)
}

// RemoveTeamMember unassigns every task held by the member, then removes the
// member by identity. It reports whether a removal occurred.
func (r *Registry) RemoveTeamMember(member *models.TeamMember) bool {
	for i, candidate := range r.members {
		if candidate.ID == member.ID {
			assigned := append([]*models.Task(nil), candidate.AssignedTasks()...)
			for _, task := range assigned {
				task.SetAssignee(nil)
			}
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

// TeamMemberByID finds a member, or returns nil.
func (r *Registry) TeamMemberByID(id string) *models.TeamMember {
	for _, member := range r.members {
		if member.ID == id {
			return member
		}
	}
	return nil
}

// TeamMemberByEmail finds a member by email, case-insensitively.
func (r *Registry) TeamMemberByEmail(email string) *models.TeamMember {
	for _, member := range r.members {
		if member.Email != "" && strings.EqualFold(member.Email, email) {
			return member
		}
	}
	return nil
}

// TeamMemberByExternalUsername finds a member by issue-tracker username,
// case-insensitively.
func (r *Registry) TeamMemberByExternalUsername(username string) *models.TeamMember {
	for _, member := range r.members {
		if member.ExternalUsername != "" && strings.EqualFold(member.ExternalUsername, username) {
			return member
		}
	}
	return nil
}

// ActiveSprintsByEndDate returns the active sprints ordered by ascending end
// date. The sort is stable, so sprints sharing an end date keep insertion
// order.
func (r *Registry) ActiveSprintsByEndDate() []*models.Sprint {
	var active []*models.Sprint
	for _, sprint := range r.sprints {
		if sprint.Active {
			active = append(active, sprint)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].EndDate.Before(active[j].EndDate)
	})
	return active
}

// HighPriorityStories returns the stories across all sprints whose priority
// is HIGH or CRITICAL, in ascending priority order. The sort is stable.
func (r *Registry) HighPriorityStories() []*models.UserStory {
	var stories []*models.UserStory
	for _, sprint := range r.sprints {
		for _, story := range sprint.Stories() {
			if story.Priority.IsHighPriority() {
				stories = append(stories, story)
			}
		}
	}
	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].Priority.Rank() < stories[j].Priority.Rank()
	})
	return stories
}

// CompletedTaskCount returns how many of the member's assigned tasks are
// done.
func (r *Registry) CompletedTaskCount(member *models.TeamMember) int {
	count := 0
	for _, task := range member.AssignedTasks() {
		if task.IsDone() {
			count++
		}
	}
	return count
}
