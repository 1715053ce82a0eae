package server

import (
	"net/http"
	"testing"

	"strack/internal/api"
)

func TestCreateMember_Defaults(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/team-members", map[string]any{
		"name":             "Alice",
		"email":            "alice@example.com",
		"externalUsername": "alice-gh",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var created api.MemberResponse
	decodeBody(t, w, &created)
	if created.ID == "" {
		t.Fatal("expected generated member id")
	}
	if created.Role != "Team Member" {
		t.Fatalf("role = %q, want default", created.Role)
	}
}

func TestCreateMember_NameRequired(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/team-members", map[string]any{"email": "x@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestUpdateMember_Merge(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/team-members", map[string]any{"name": "Alice"})
	var created api.MemberResponse
	decodeBody(t, w, &created)

	w = doRequest(t, srv, http.MethodPut, "/api/team-members/"+created.ID, map[string]any{
		"role": "Scrum Master",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var updated api.MemberResponse
	decodeBody(t, w, &updated)
	if updated.Role != "Scrum Master" {
		t.Fatalf("role = %q", updated.Role)
	}
	if updated.Name != "Alice" {
		t.Fatalf("name = %q, unmentioned field must survive", updated.Name)
	}
}

func TestDeleteMember_UnassignsTasks(t *testing.T) {
	srv := newTestServer(t)
	sprint := createSprint(t, srv, "S1")
	story := createStory(t, srv, sprint.ID, "Story")

	var member api.MemberResponse
	w := doRequest(t, srv, http.MethodPost, "/api/team-members", map[string]any{"name": "Bob"})
	decodeBody(t, w, &member)

	w = doRequest(t, srv, http.MethodPost, taskPath(sprint.ID, story.ID), map[string]any{
		"title":                "T",
		"assignedTeamMemberId": member.ID,
	})
	var task api.TaskResponse
	decodeBody(t, w, &task)

	w = doRequest(t, srv, http.MethodDelete, "/api/team-members/"+member.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doRequest(t, srv, http.MethodGet, taskPath(sprint.ID, story.ID)+"/"+task.ID, nil)
	var got api.TaskResponse
	decodeBody(t, w, &got)
	if got.AssignedTeamMember != nil {
		t.Fatal("task should be unassigned after its member is removed")
	}
}
