package registry

import (
	"testing"
	"time"

	"strack/internal/models"
)

func newSprint(name string, active bool) *models.Sprint {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	sprint := models.NewSprint(name, start, start.AddDate(0, 0, 14), "")
	sprint.Active = active
	return sprint
}

func TestAddSprintPromotion(t *testing.T) {
	reg := New()

	first := newSprint("first", false)
	reg.AddSprint(first)
	if reg.CurrentSprint() != first {
		t.Fatal("first sprint should become current")
	}

	second := newSprint("second", false)
	reg.AddSprint(second)
	if reg.CurrentSprint() != first {
		t.Fatal("inactive sprint must not displace current")
	}

	active := newSprint("active", true)
	reg.AddSprint(active)
	if reg.CurrentSprint() != active {
		t.Fatal("active sprint should displace inactive current")
	}

	another := newSprint("another", true)
	reg.AddSprint(another)
	if reg.CurrentSprint() != active {
		t.Fatal("active current must not be displaced")
	}
}

func TestRemoveSprintRepicksCurrent(t *testing.T) {
	reg := New()
	current := newSprint("current", true)
	idle := newSprint("idle", false)
	spare := newSprint("spare", true)
	reg.AddSprint(current)
	reg.AddSprint(idle)
	reg.AddSprint(spare)

	if !reg.RemoveSprint(current) {
		t.Fatal("remove reported false")
	}
	if reg.CurrentSprint() != spare {
		t.Fatal("first active survivor should become current")
	}

	reg.RemoveSprint(spare)
	if reg.CurrentSprint() != idle {
		t.Fatal("first survivor should become current when none are active")
	}

	reg.RemoveSprint(idle)
	if reg.CurrentSprint() != nil {
		t.Fatal("empty registry should have no current sprint")
	}
}

func TestRemoveSprintUnassignsTasks(t *testing.T) {
	reg := New()
	member := models.NewTeamMember("Alice", "", "")
	reg.AddTeamMember(member)

	sprint := newSprint("S", true)
	story := models.NewUserStory("A", "", models.PriorityMedium, 3)
	sprint.AddStory(story)
	task := models.NewTask("T", "")
	story.AddTask(task)
	task.SetAssignee(member)
	reg.AddSprint(sprint)

	reg.RemoveSprint(sprint)
	if len(member.AssignedTasks()) != 0 {
		t.Fatal("member kept a task from a removed sprint")
	}
}

func TestSetCurrentSprintRejectsUnmanaged(t *testing.T) {
	reg := New()
	reg.AddSprint(newSprint("managed", false))

	if err := reg.SetCurrentSprint(newSprint("stranger", false)); err != ErrNotManaged {
		t.Fatalf("err = %v, want ErrNotManaged", err)
	}
}

func TestRemoveTeamMemberUnassigns(t *testing.T) {
	reg := New()
	member := models.NewTeamMember("Alice", "", "")
	reg.AddTeamMember(member)

	sprint := newSprint("S", true)
	story := models.NewUserStory("A", "", models.PriorityMedium, 3)
	sprint.AddStory(story)
	for _, title := range []string{"T1", "T2"} {
		task := models.NewTask(title, "")
		story.AddTask(task)
		task.SetAssignee(member)
	}
	reg.AddSprint(sprint)

	if !reg.RemoveTeamMember(member) {
		t.Fatal("remove reported false")
	}
	for _, task := range story.Tasks() {
		if task.Assignee() != nil {
			t.Fatalf("task %s still assigned", task.Title)
		}
	}
	if len(reg.TeamMembers()) != 0 {
		t.Fatal("member still in roster")
	}
}

func TestMemberLookupsCaseInsensitive(t *testing.T) {
	reg := New()
	member := models.NewTeamMember("Alice", "Alice@Example.com", "Alice-GH")
	reg.AddTeamMember(member)

	if reg.TeamMemberByEmail("alice@example.COM") != member {
		t.Fatal("email lookup should ignore case")
	}
	if reg.TeamMemberByExternalUsername("alice-gh") != member {
		t.Fatal("username lookup should ignore case")
	}
	if reg.TeamMemberByEmail("") != nil || reg.TeamMemberByExternalUsername("") != nil {
		t.Fatal("empty keys must not match")
	}
}

func TestActiveSprintsByEndDate(t *testing.T) {
	reg := New()
	late := newSprint("late", true)
	late.EndDate = late.EndDate.AddDate(0, 1, 0)
	early := newSprint("early", true)
	idle := newSprint("idle", false)
	reg.AddSprint(late)
	reg.AddSprint(early)
	reg.AddSprint(idle)

	got := reg.ActiveSprintsByEndDate()
	if len(got) != 2 {
		t.Fatalf("active = %d, want 2", len(got))
	}
	if got[0] != early || got[1] != late {
		t.Fatal("not sorted by end date")
	}
}

func TestHighPriorityStories(t *testing.T) {
	reg := New()
	sprint := newSprint("S", true)
	low := models.NewUserStory("low", "", models.PriorityLow, 1)
	high := models.NewUserStory("high", "", models.PriorityHigh, 1)
	critical := models.NewUserStory("critical", "", models.PriorityCritical, 1)
	sprint.AddStory(low)
	sprint.AddStory(high)
	sprint.AddStory(critical)
	reg.AddSprint(sprint)

	got := reg.HighPriorityStories()
	if len(got) != 2 {
		t.Fatalf("high priority = %d, want 2", len(got))
	}
	if got[0] != high || got[1] != critical {
		t.Fatal("not in ascending priority order")
	}
}

func TestCompletedTaskCount(t *testing.T) {
	reg := New()
	member := models.NewTeamMember("Alice", "", "")
	reg.AddTeamMember(member)

	done := models.NewTask("done", "")
	done.Status = models.StatusDone
	done.SetAssignee(member)
	open := models.NewTask("open", "")
	open.SetAssignee(member)

	if got := reg.CompletedTaskCount(member); got != 1 {
		t.Fatalf("completed = %d, want 1", got)
	}
}
