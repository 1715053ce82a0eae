package server

import (
	"fmt"
	"net/http"

	"strack/internal/api"
	"strack/internal/models"
)

func (s *Server) handleListSprints(w http.ResponseWriter, r *http.Request) {
	s.healOnRead(s.reg.Sprints()...)
	s.writeJSON(w, http.StatusOK, api.NewSprintList(s.reg.Sprints()))
}

func (s *Server) handleCreateSprint(w http.ResponseWriter, r *http.Request) {
	var req api.SprintRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if req.Name == nil || *req.Name == "" {
		s.writeError(w, r, badRequest(fmt.Errorf("name is required")))
		return
	}
	if req.StartDate == nil || req.EndDate == nil {
		s.writeError(w, r, badRequest(fmt.Errorf("startDate and endDate are required")))
		return
	}
	start, err := models.ParseDate(*req.StartDate)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	end, err := models.ParseDate(*req.EndDate)
	if err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}

	goal := ""
	if req.Goal != nil {
		goal = *req.Goal
	}
	sprint := models.NewSprint(*req.Name, start, end, goal)
	if req.Active != nil {
		sprint.Active = *req.Active
	}
	s.reg.AddSprint(sprint)

	if !s.persist(w, r) {
		return
	}
	s.writeJSON(w, http.StatusCreated, api.NewSprintResponse(sprint))
}

func (s *Server) handleGetSprint(w http.ResponseWriter, r *http.Request) {
	sprint := s.sprintOr404(w, r)
	if sprint == nil {
		return
	}
	s.healOnRead(sprint)
	s.writeJSON(w, http.StatusOK, api.NewSprintResponse(sprint))
}

func (s *Server) handleUpdateSprint(w http.ResponseWriter, r *http.Request) {
	sprint := s.sprintOr404(w, r)
	if sprint == nil {
		return
	}
	var req api.SprintRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	if req.Name != nil {
		sprint.Name = *req.Name
	}
	if req.StartDate != nil {
		start, err := models.ParseDate(*req.StartDate)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		sprint.StartDate = start
	}
	if req.EndDate != nil {
		end, err := models.ParseDate(*req.EndDate)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		sprint.EndDate = end
	}
	if req.Goal != nil {
		sprint.Goal = *req.Goal
	}
	if req.Active != nil {
		sprint.Active = *req.Active
	}

	if !s.persist(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, api.NewSprintResponse(sprint))
}

func (s *Server) handleDeleteSprint(w http.ResponseWriter, r *http.Request) {
	sprint := s.sprintOr404(w, r)
	if sprint == nil {
		return
	}
	s.reg.RemoveSprint(sprint)

	if !s.persist(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
