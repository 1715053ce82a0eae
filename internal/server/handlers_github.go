package server

import (
	"fmt"
	"net/http"

	"strack/internal/api"
	"strack/internal/github"
)

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	repo := r.URL.Query().Get("repo")
	if owner == "" || repo == "" {
		s.writeError(w, r, badRequest(fmt.Errorf("owner and repo query parameters are required")))
		return
	}

	issues, err := s.issues.ListIssues(r.Context(), owner, repo)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	responses := make([]api.IssueResponse, 0, len(issues))
	for _, issue := range issues {
		labels := issue.Labels
		if labels == nil {
			labels = []string{}
		}
		responses = append(responses, api.IssueResponse{
			ID:          issue.ID,
			Title:       issue.Title,
			Description: issue.Body,
			State:       issue.State,
			URL:         issue.URL,
			Assignee:    issue.AssigneeUsername,
			Labels:      labels,
		})
	}
	s.writeJSON(w, http.StatusOK, responses)
}

func (s *Server) handleImportIssues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	owner := query.Get("owner")
	repo := query.Get("repo")
	sprintID := query.Get("sprintId")
	if owner == "" || repo == "" || sprintID == "" {
		s.writeError(w, r, badRequest(fmt.Errorf("owner, repo, and sprintId query parameters are required")))
		return
	}

	sprint := s.reg.SprintByID(sprintID)
	if sprint == nil {
		s.writeError(w, r, notFound(fmt.Errorf("sprint %s not found", sprintID)))
		return
	}

	targetStory := sprint.StoryByID(query.Get("userStoryId"))
	if storyID := query.Get("userStoryId"); storyID != "" && targetStory == nil {
		s.writeError(w, r, notFound(fmt.Errorf("user story %s not found", storyID)))
		return
	}

	issues, err := s.issues.ListIssues(r.Context(), owner, repo)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := github.ConvertIssues(issues, sprint, targetStory, s.storyLabel, s.reg)
	if !s.persist(w, r) {
		return
	}

	s.writeJSON(w, http.StatusCreated, api.ImportResponse{
		Success:        true,
		Message:        fmt.Sprintf("imported %d issues from %s/%s", len(issues), owner, repo),
		StoriesCreated: result.StoriesCreated,
		TasksCreated:   result.TasksCreated,
	})
}
