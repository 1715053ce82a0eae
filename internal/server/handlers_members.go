package server

import (
	"fmt"
	"net/http"

	"strack/internal/api"
	"strack/internal/models"
)

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.NewMemberList(s.reg.TeamMembers()))
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req api.MemberRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if req.Name == nil || *req.Name == "" {
		s.writeError(w, r, badRequest(fmt.Errorf("name is required")))
		return
	}

	email := ""
	if req.Email != nil {
		email = *req.Email
	}
	externalUsername := ""
	if req.ExternalUsername != nil {
		externalUsername = *req.ExternalUsername
	}
	member := models.NewTeamMember(*req.Name, email, externalUsername)
	if req.Role != nil && *req.Role != "" {
		member.Role = *req.Role
	}
	s.reg.AddTeamMember(member)

	if !s.persist(w, r) {
		return
	}
	s.writeJSON(w, http.StatusCreated, api.NewMemberResponse(member))
}

func (s *Server) memberOr404(w http.ResponseWriter, r *http.Request) *models.TeamMember {
	id := r.PathValue("mid")
	member := s.reg.TeamMemberByID(id)
	if member == nil {
		s.writeError(w, r, notFound(fmt.Errorf("team member %s not found", id)))
		return nil
	}
	return member
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	member := s.memberOr404(w, r)
	if member == nil {
		return
	}
	s.writeJSON(w, http.StatusOK, api.NewMemberResponse(member))
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	member := s.memberOr404(w, r)
	if member == nil {
		return
	}
	var req api.MemberRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.ExternalUsername != nil {
		member.ExternalUsername = *req.ExternalUsername
	}
	if req.Role != nil {
		member.Role = *req.Role
	}

	if !s.persist(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, api.NewMemberResponse(member))
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	member := s.memberOr404(w, r)
	if member == nil {
		return
	}
	s.reg.RemoveTeamMember(member)

	if !s.persist(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
