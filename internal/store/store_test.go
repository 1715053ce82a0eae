package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"strack/internal/models"
	"strack/internal/registry"
)

func day(value string) time.Time {
	t, err := models.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

func seedRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()

	alice := models.NewTeamMember("Alice", "alice@example.com", "alice-gh")
	bob := models.NewTeamMember("Bob", "bob@example.com", "")
	reg.AddTeamMember(alice)
	reg.AddTeamMember(bob)

	sprint := models.NewSprint("Sprint 1", day("2026-09-01"), day("2026-09-14"), "Ship onboarding")
	sprint.Active = true
	reg.AddSprint(sprint)

	story := models.NewUserStory("Login flow", "Email and password login", models.PriorityHigh, 5)
	sprint.AddStory(story)

	done := models.NewTask("Build form", "Markup and validation")
	done.Status = models.StatusDone
	story.AddTask(done)
	done.SetAssignee(alice)

	open := models.NewTask("Wire backend", "")
	story.AddTask(open)

	return reg
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	reg := seedRegistry(t)

	if err := s.Save(reg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := len(loaded.TeamMembers()); got != 2 {
		t.Fatalf("members = %d, want 2", got)
	}
	sprints := loaded.Sprints()
	if len(sprints) != 1 {
		t.Fatalf("sprints = %d, want 1", len(sprints))
	}
	sprint := sprints[0]
	if sprint.ID != reg.Sprints()[0].ID {
		t.Errorf("sprint id = %q, want %q", sprint.ID, reg.Sprints()[0].ID)
	}
	if !sprint.Active {
		t.Error("sprint active flag lost")
	}
	if sprint.Goal != "Ship onboarding" {
		t.Errorf("goal = %q", sprint.Goal)
	}
	if current := loaded.CurrentSprint(); current == nil || current.ID != sprint.ID {
		t.Error("current sprint not restored")
	}

	stories := sprint.Stories()
	if len(stories) != 1 {
		t.Fatalf("stories = %d, want 1", len(stories))
	}
	story := stories[0]
	if story.Priority != models.PriorityHigh || story.StoryPoints != 5 {
		t.Errorf("story = %s/%d, want HIGH/5", story.Priority, story.StoryPoints)
	}

	tasks := story.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(tasks))
	}
	if tasks[0].Status != models.StatusDone {
		t.Errorf("task status = %s, want DONE", tasks[0].Status)
	}
	assignee := tasks[0].Assignee()
	if assignee == nil || assignee.Name != "Alice" {
		t.Fatalf("assignee = %v, want Alice", assignee)
	}
	if got := len(assignee.AssignedTasks()); got != 1 {
		t.Errorf("assignee task list = %d, want 1", got)
	}
	if tasks[1].Assignee() != nil {
		t.Error("unassigned task gained an assignee")
	}
}

func TestLoadMissingFilesIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))
	reg, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(reg.Sprints()) != 0 || len(reg.TeamMembers()) != 0 {
		t.Error("expected empty registry")
	}
}

func TestLoadResolvesAssigneeByIDBeforeName(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, membersFileName, `[
  {"id": "m-1", "name": "Alice", "email": "a@example.com"},
  {"id": "m-2", "name": "Alice", "email": "other@example.com"}
]`)
	writeTestFile(t, dir, sprintsFileName, `{
  "sprints": [{
    "id": "s-1", "name": "Sprint", "startDate": "2026-09-01", "endDate": "2026-09-14",
    "userStories": [{
      "id": "us-1", "title": "Story", "description": "", "priority": "MEDIUM", "storyPoints": 3,
      "tasks": [{
        "id": "t-1", "title": "Task", "description": "",
        "assignedTeamMember": "Alice", "assignedTeamMemberId": "m-2"
      }]
    }]
  }]
}`)

	reg, err := New(dir).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	task := reg.Sprints()[0].Stories()[0].Tasks()[0]
	assignee := task.Assignee()
	if assignee == nil || assignee.ID != "m-2" {
		t.Fatalf("assignee = %v, want member m-2", assignee)
	}
}

func TestLoadUnknownAssigneeLeftUnassigned(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, membersFileName, `[]`)
	writeTestFile(t, dir, sprintsFileName, `{
  "sprints": [{
    "id": "s-1", "name": "Sprint", "startDate": "2026-09-01", "endDate": "2026-09-14",
    "userStories": [{
      "id": "us-1", "title": "Story", "description": "", "priority": "LOW", "storyPoints": 1,
      "tasks": [{"id": "t-1", "title": "Task", "description": "", "assignedTeamMember": "Ghost"}]
    }]
  }]
}`)

	reg, err := New(dir).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := reg.Sprints()[0].Stories()[0].Tasks()[0].Assignee(); got != nil {
		t.Errorf("assignee = %v, want nil", got)
	}
}

func TestLoadNormalizesStatus(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, membersFileName, `[]`)
	writeTestFile(t, dir, sprintsFileName, `{
  "sprints": [{
    "id": "s-1", "name": "Sprint", "startDate": "2026-09-01", "endDate": "2026-09-14",
    "userStories": [{
      "id": "us-1", "title": "Story", "description": "", "priority": "MEDIUM", "storyPoints": 3,
      "tasks": [
        {"id": "t-1", "title": "Alias", "description": "", "status": "TODO"},
        {"id": "t-2", "title": "Lower", "description": "", "status": "in progress"},
        {"id": "t-3", "title": "Missing", "description": ""},
        {"id": "t-4", "title": "Garbage", "description": "", "status": "BLOCKED"}
      ]
    }]
  }]
}`)

	reg, err := New(dir).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tasks := reg.Sprints()[0].Stories()[0].Tasks()
	want := []models.TaskStatus{
		models.StatusToDo,
		models.StatusInProgress,
		models.StatusToDo,
		models.StatusToDo,
	}
	for i, task := range tasks {
		if task.Status != want[i] {
			t.Errorf("task %s status = %s, want %s", task.ID, task.Status, want[i])
		}
	}
}

func TestLoadCorruptJSONIsFormatError(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, membersFileName, `{not json`)

	_, err := New(dir).Load()
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
}

func TestSaveWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	if err := New(dir).Save(seedRegistry(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, name := range []string{membersFileName, sprintsFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
