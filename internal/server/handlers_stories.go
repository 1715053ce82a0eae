package server

import (
	"fmt"
	"net/http"

	"strack/internal/api"
	"strack/internal/models"
)

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	sprint := s.sprintOr404(w, r)
	if sprint == nil {
		return
	}
	s.healOnRead(sprint)

	stories := make([]api.StoryResponse, 0, len(sprint.Stories()))
	for _, story := range sprint.Stories() {
		stories = append(stories, api.NewStoryResponse(story))
	}
	s.writeJSON(w, http.StatusOK, stories)
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	sprint := s.sprintOr404(w, r)
	if sprint == nil {
		return
	}
	var req api.StoryRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if req.Title == nil || *req.Title == "" {
		s.writeError(w, r, badRequest(fmt.Errorf("title is required")))
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = models.PriorityOrDefault(*req.Priority)
	}
	points := models.DefaultStoryPoints
	if req.StoryPoints != nil {
		points = *req.StoryPoints
	}

	story := models.NewUserStory(*req.Title, description, priority, points)
	sprint.AddStory(story)

	if !s.persist(w, r) {
		return
	}
	s.writeJSON(w, http.StatusCreated, api.NewStoryResponse(story))
}

func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	story := s.storyOr404(w, r)
	if story == nil {
		return
	}
	s.healOnRead(story.ParentSprint())
	s.writeJSON(w, http.StatusOK, api.NewStoryResponse(story))
}

func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	story := s.storyOr404(w, r)
	if story == nil {
		return
	}
	var req api.StoryRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	if req.Title != nil {
		story.Title = *req.Title
	}
	if req.Description != nil {
		story.Description = *req.Description
	}
	if req.Priority != nil {
		priority, err := models.ParsePriority(*req.Priority)
		if err != nil {
			s.writeError(w, r, badRequest(err))
			return
		}
		story.Priority = priority
	}
	if req.StoryPoints != nil {
		story.StoryPoints = *req.StoryPoints
	}

	if !s.persist(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, api.NewStoryResponse(story))
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	story := s.storyOr404(w, r)
	if story == nil {
		return
	}
	story.ParentSprint().RemoveStory(story)

	if !s.persist(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
