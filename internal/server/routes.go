package server

import (
	"net/http"
)

// Handler builds the full middleware-wrapped route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Sprints collection.
	mux.HandleFunc("GET /api/sprints", s.handleListSprints)
	mux.HandleFunc("POST /api/sprints", s.handleCreateSprint)

	// Single sprint.
	mux.HandleFunc("GET /api/sprints/{sid}", s.handleGetSprint)
	mux.HandleFunc("PUT /api/sprints/{sid}", s.handleUpdateSprint)
	mux.HandleFunc("DELETE /api/sprints/{sid}", s.handleDeleteSprint)

	// User stories.
	mux.HandleFunc("GET /api/sprints/{sid}/stories", s.handleListStories)
	mux.HandleFunc("POST /api/sprints/{sid}/stories", s.handleCreateStory)
	mux.HandleFunc("GET /api/sprints/{sid}/stories/{yid}", s.handleGetStory)
	mux.HandleFunc("PUT /api/sprints/{sid}/stories/{yid}", s.handleUpdateStory)
	mux.HandleFunc("DELETE /api/sprints/{sid}/stories/{yid}", s.handleDeleteStory)

	// Tasks.
	mux.HandleFunc("GET /api/sprints/{sid}/stories/{yid}/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/sprints/{sid}/stories/{yid}/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /api/sprints/{sid}/stories/{yid}/tasks/{tid}", s.handleGetTask)
	mux.HandleFunc("PUT /api/sprints/{sid}/stories/{yid}/tasks/{tid}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/sprints/{sid}/stories/{yid}/tasks/{tid}", s.handleDeleteTask)

	// Team members.
	mux.HandleFunc("GET /api/team-members", s.handleListMembers)
	mux.HandleFunc("POST /api/team-members", s.handleCreateMember)
	mux.HandleFunc("GET /api/team-members/{mid}", s.handleGetMember)
	mux.HandleFunc("PUT /api/team-members/{mid}", s.handleUpdateMember)
	mux.HandleFunc("DELETE /api/team-members/{mid}", s.handleDeleteMember)

	// External issue adapter.
	mux.HandleFunc("GET /api/github/issues", s.handleListIssues)
	mux.HandleFunc("POST /api/github/issues", s.handleImportIssues)

	// Unmatched paths under /api still get a JSON error body.
	mux.HandleFunc("/api/", s.handleUnknown)

	return s.withRequestLogging(s.withRecovery(s.withCORS(s.withRegistryLock(mux))))
}

func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, notFound(nil))
}
