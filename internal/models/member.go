package models

import "github.com/google/uuid"

// TeamMember is a person who may be assigned tasks. The assigned-task list
// is a live view maintained by Task.SetAssignee; it is never stored.
type TeamMember struct {
	ID               string
	Name             string
	Email            string
	ExternalUsername string
	Role             string

	assignedTasks []*Task
}

// NewTeamMember creates a member with a fresh ID and the default role.
func NewTeamMember(name, email, externalUsername string) *TeamMember {
	return &TeamMember{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		ExternalUsername: externalUsername,
		Role:             DefaultMemberRole,
	}
}

// AssignedTasks returns the tasks currently assigned to this member. The
// returned slice is the live backing store; callers must not mutate it.
func (m *TeamMember) AssignedTasks() []*Task {
	return m.assignedTasks
}

// TaskByID finds an assigned task by ID.
func (m *TeamMember) TaskByID(id string) *Task {
	for _, task := range m.assignedTasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

// adoptTask inserts a task into the member's view unless already present.
func (m *TeamMember) adoptTask(task *Task) {
	for _, candidate := range m.assignedTasks {
		if candidate.ID == task.ID {
			return
		}
	}
	m.assignedTasks = append(m.assignedTasks, task)
}

// dropTask removes a task from the member's view.
func (m *TeamMember) dropTask(task *Task) {
	for i, candidate := range m.assignedTasks {
		if candidate.ID == task.ID {
			m.assignedTasks = append(m.assignedTasks[:i], m.assignedTasks[i+1:]...)
			return
		}
	}
}

// Copy returns a clone of the member's own fields, preserving the ID and
// carrying no task view.
func (m *TeamMember) Copy() *TeamMember {
	return &TeamMember{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		ExternalUsername: m.ExternalUsername,
		Role:             m.Role,
	}
}

// DeepCopy clones the member and its assigned tasks. The task copies do not
// point back at the copied member, so the result is cycle-free.
func (m *TeamMember) DeepCopy() *TeamMember {
	copied := m.Copy()
	for _, task := range m.assignedTasks {
		copied.assignedTasks = append(copied.assignedTasks, task.Copy())
	}
	return copied
}

// UpdateFrom replaces the member's own fields from another member. The ID
// and task view are untouched.
func (m *TeamMember) UpdateFrom(other *TeamMember) {
	if other == nil {
		return
	}
	m.Name = other.Name
	m.Email = other.Email
	m.ExternalUsername = other.ExternalUsername
	m.Role = other.Role
}
