package server

import (
	"net/http"

	"strack/internal/api"
	"strack/internal/models"
)

const defaultTaskTitle = "New Task"

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	story := s.storyOr404(w, r)
	if story == nil {
		return
	}
	s.healOnRead(story.ParentSprint())

	tasks := make([]api.TaskResponse, 0, len(story.Tasks()))
	for _, task := range story.Tasks() {
		tasks = append(tasks, api.NewTaskResponse(task))
	}
	s.writeJSON(w, http.StatusOK, tasks)
}

// handleCreateTask tolerates sparse bodies: title and description default
// rather than fail, and an unresolvable assignee id leaves the task
// unassigned.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	story := s.storyOr404(w, r)
	if story == nil {
		return
	}
	var req api.TaskRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	title := defaultTaskTitle
	if req.Title != nil && *req.Title != "" {
		title = *req.Title
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	task := models.NewTask(title, description)
	if req.Status != nil {
		status, err := models.ParseTaskStatus(*req.Status)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		task.Status = status
	}
	story.AddTask(task)

	if req.AssignedTeamMemberID != nil && *req.AssignedTeamMemberID != "" {
		if member := s.reg.TeamMemberByID(*req.AssignedTeamMemberID); member != nil {
			task.SetAssignee(member)
		} else {
			s.log().Warn("task assignee not found", "task_id", task.ID, "member_id", *req.AssignedTeamMemberID)
		}
	}

	if !s.persist(w, r) {
		return
	}
	s.writeJSON(w, http.StatusCreated, api.NewTaskResponse(task))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task := s.taskOr404(w, r)
	if task == nil {
		return
	}
	s.healOnRead(task.ParentStory().ParentSprint())
	s.writeJSON(w, http.StatusOK, api.NewTaskResponse(task))
}

// handleUpdateTask merges non-null fields. An assignedTeamMemberId of ""
// unassigns; an id that resolves to nothing is logged and ignored. An
// absent status keeps the current one, normalizing an empty status to
// TO_DO along the way.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	task := s.taskOr404(w, r)
	if task == nil {
		return
	}
	var req api.TaskRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		status, err := models.ParseTaskStatus(*req.Status)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		task.Status = status
	} else if task.Status == "" {
		task.Status = models.StatusToDo
	}
	if req.AssignedTeamMemberID != nil {
		switch id := *req.AssignedTeamMemberID; {
		case id == "":
			task.SetAssignee(nil)
		default:
			if member := s.reg.TeamMemberByID(id); member != nil {
				task.SetAssignee(member)
			} else {
				s.log().Warn("task assignee not found", "task_id", task.ID, "member_id", id)
			}
		}
	}

	if !s.persist(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, api.NewTaskResponse(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task := s.taskOr404(w, r)
	if task == nil {
		return
	}
	task.ParentStory().RemoveTask(task)

	if !s.persist(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
