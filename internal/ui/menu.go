// Package ui implements the interactive terminal menu. It drives the same
// registry and store as the HTTP server, reading line-based commands from
// an injectable input so the flows are testable with scripted sessions.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"strack/internal/github"
	"strack/internal/models"
	"strack/internal/registry"
	"strack/internal/store"
)

// Menu is the interactive front end.
type Menu struct {
	reg        *registry.Registry
	store      *store.Store
	issues     github.Provider
	storyLabel string
	in         *bufio.Scanner
	out        io.Writer
	logger     *slog.Logger
	eof        bool
}

// New builds a menu over the given registry and store. issues may be nil;
// the GitHub flows then use the mock provider.
func New(reg *registry.Registry, st *store.Store, issues github.Provider, storyLabel string, in io.Reader, out io.Writer, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	if issues == nil {
		issues = github.MockProvider{}
	}
	if storyLabel == "" {
		storyLabel = github.DefaultStoryLabel
	}
	return &Menu{
		reg:        reg,
		store:      st,
		issues:     issues,
		storyLabel: storyLabel,
		in:         bufio.NewScanner(in),
		out:        out,
		logger:     logger,
	}
}

// Run loops on the main menu until the user exits or input ends. Data is
// saved only through the explicit save action; exiting does not save.
func (m *Menu) Run() {
	for {
		m.header("Sprint Tracker")
		m.printf("1. Sprints\n2. Team Members\n3. GitHub Integration\n4. Statistics\n5. Save Data\n6. Exit\n")
		switch m.prompt("Choose an option") {
		case "1":
			m.sprintMenu()
		case "2":
			m.memberMenu()
		case "3":
			m.githubMenu()
		case "4":
			m.statistics()
		case "5":
			m.save()
		case "6", "":
			return
		default:
			m.errorf("Invalid option")
		}
		if m.done() {
			return
		}
	}
}

func (m *Menu) sprintMenu() {
	for {
		m.header("Sprints")
		m.listSprints()
		m.printf("1. Create sprint\n2. Select current sprint\n3. Update sprint\n4. Delete sprint\n5. Manage stories\n6. Back\n")
		switch m.prompt("Choose an option") {
		case "1":
			m.createSprint()
		case "2":
			m.selectCurrentSprint()
		case "3":
			m.updateSprint()
		case "4":
			m.deleteSprint()
		case "5":
			m.storyMenu()
		case "6", "":
			return
		default:
			m.errorf("Invalid option")
		}
		if m.done() {
			return
		}
	}
}

func (m *Menu) listSprints() {
	sprints := m.reg.Sprints()
	if len(sprints) == 0 {
		m.printf("%s\n", dimStyle.Render("No sprints yet."))
		return
	}
	current := m.reg.CurrentSprint()
	for i, sprint := range sprints {
		line := fmt.Sprintf("%d) %s  %s to %s  %d%% done",
			i+1, sprint.Name,
			models.FormatDate(sprint.StartDate), models.FormatDate(sprint.EndDate),
			sprint.CompletionPercentage())
		if current != nil && current.ID == sprint.ID {
			line = currentStyle.Render(line + "  [current]")
		}
		m.printf("%s\n", line)
	}
}

func (m *Menu) createSprint() {
	name := m.prompt("Sprint name")
	if name == "" {
		m.errorf("Name is required")
		return
	}
	start, err := models.ParseDate(m.prompt("Start date (YYYY-MM-DD)"))
	if err != nil {
		m.errorf("Invalid date: %v", err)
		return
	}
	end, err := models.ParseDate(m.prompt("End date (YYYY-MM-DD)"))
	if err != nil {
		m.errorf("Invalid date: %v", err)
		return
	}
	goal := m.prompt("Goal")

	sprint := models.NewSprint(name, start, end, goal)
	m.reg.AddSprint(sprint)
	m.printf("Created sprint %s\n", sprint.ID)
}

func (m *Menu) selectCurrentSprint() {
	sprint := m.pickSprint()
	if sprint == nil {
		return
	}
	if err := m.reg.SetCurrentSprint(sprint); err != nil {
		m.errorf("%v", err)
		return
	}
	m.printf("Current sprint is now %q\n", sprint.Name)
}

func (m *Menu) updateSprint() {
	sprint := m.pickSprint()
	if sprint == nil {
		return
	}
	if name := m.prompt("New name (blank keeps current)"); name != "" {
		sprint.Name = name
	}
	if goal := m.prompt("New goal (blank keeps current)"); goal != "" {
		sprint.Goal = goal
	}
	switch strings.ToLower(m.prompt("Active? (y/n/blank keeps current)")) {
	case "y":
		sprint.Active = true
	case "n":
		sprint.Active = false
	}
	m.printf("Updated sprint %q\n", sprint.Name)
}

func (m *Menu) deleteSprint() {
	sprint := m.pickSprint()
	if sprint == nil {
		return
	}
	if strings.ToLower(m.prompt(fmt.Sprintf("Delete %q? (y/n)", sprint.Name))) != "y" {
		return
	}
	m.reg.RemoveSprint(sprint)
	m.printf("Deleted.\n")
}

func (m *Menu) storyMenu() {
	sprint := m.reg.CurrentSprint()
	if sprint == nil {
		m.errorf("No sprint selected. Select a current sprint first.")
		return
	}
	for {
		m.header(fmt.Sprintf("Stories — %s", sprint.Name))
		m.listStories(sprint)
		m.printf("1. Add story\n2. Update story\n3. Delete story\n4. Manage tasks\n5. Back\n")
		switch m.prompt("Choose an option") {
		case "1":
			m.createStory(sprint)
		case "2":
			m.updateStory(sprint)
		case "3":
			m.deleteStory(sprint)
		case "4":
			m.taskMenu(sprint)
		case "5", "":
			return
		default:
			m.errorf("Invalid option")
		}
		if m.done() {
			return
		}
	}
}

func (m *Menu) listStories(sprint *models.Sprint) {
	stories := sprint.Stories()
	if len(stories) == 0 {
		m.printf("%s\n", dimStyle.Render("No stories yet."))
		return
	}
	for i, story := range stories {
		m.printf("%d) %s  [%s, %d pts]  %d%% done\n",
			i+1, story.Title, story.Priority, story.StoryPoints, story.CompletionPercentage())
	}
}

func (m *Menu) createStory(sprint *models.Sprint) {
	title := m.prompt("Story title")
	if title == "" {
		m.errorf("Title is required")
		return
	}
	description := m.prompt("Description")
	priority := models.PriorityOrDefault(m.prompt("Priority (LOW/MEDIUM/HIGH/CRITICAL)"))
	points := models.DefaultStoryPoints
	if raw := m.prompt("Story points"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			points = parsed
		}
	}
	story := models.NewUserStory(title, description, priority, points)
	sprint.AddStory(story)
	m.printf("Created story %s\n", story.ID)
}

func (m *Menu) updateStory(sprint *models.Sprint) {
	story := m.pickStory(sprint)
	if story == nil {
		return
	}
	if title := m.prompt("New title (blank keeps current)"); title != "" {
		story.Title = title
	}
	if raw := m.prompt("New priority (blank keeps current)"); raw != "" {
		priority, err := models.ParsePriority(raw)
		if err != nil {
			m.errorf("%v", err)
			return
		}
		story.Priority = priority
	}
	if raw := m.prompt("New story points (blank keeps current)"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			story.StoryPoints = parsed
		}
	}
	m.printf("Updated story %q\n", story.Title)
}

func (m *Menu) deleteStory(sprint *models.Sprint) {
	story := m.pickStory(sprint)
	if story == nil {
		return
	}
	sprint.RemoveStory(story)
	m.printf("Deleted.\n")
}

func (m *Menu) taskMenu(sprint *models.Sprint) {
	story := m.pickStory(sprint)
	if story == nil {
		return
	}
	for {
		m.header(fmt.Sprintf("Tasks — %s", story.Title))
		m.listTasks(story)
		m.printf("1. Add task\n2. Change status\n3. Assign\n4. Delete task\n5. Back\n")
		switch m.prompt("Choose an option") {
		case "1":
			m.createTask(story)
		case "2":
			m.changeTaskStatus(story)
		case "3":
			m.assignTask(story)
		case "4":
			m.deleteTask(story)
		case "5", "":
			return
		default:
			m.errorf("Invalid option")
		}
		if m.done() {
			return
		}
	}
}

func (m *Menu) listTasks(story *models.UserStory) {
	tasks := story.Tasks()
	if len(tasks) == 0 {
		m.printf("%s\n", dimStyle.Render("No tasks yet."))
		return
	}
	for i, task := range tasks {
		line := fmt.Sprintf("%d) %s  [%s]", i+1, task.Title, task.Status)
		if assignee := task.Assignee(); assignee != nil {
			line += "  -> " + assignee.Name
		}
		if task.IsDone() {
			line = doneStyle.Render(line)
		}
		m.printf("%s\n", line)
	}
}

func (m *Menu) createTask(story *models.UserStory) {
	title := m.prompt("Task title")
	if title == "" {
		title = "New Task"
	}
	description := m.prompt("Description")
	task := models.NewTask(title, description)
	story.AddTask(task)
	m.printf("Created task %s\n", task.ID)
}

func (m *Menu) changeTaskStatus(story *models.UserStory) {
	task := m.pickTask(story)
	if task == nil {
		return
	}
	status, err := models.ParseTaskStatus(m.prompt("Status (TODO/IN_PROGRESS/DONE)"))
	if err != nil {
		m.errorf("%v", err)
		return
	}
	task.Status = status
	m.printf("Task is now %s\n", task.Status)
}

func (m *Menu) assignTask(story *models.UserStory) {
	task := m.pickTask(story)
	if task == nil {
		return
	}
	member := m.pickMember()
	if member == nil {
		task.SetAssignee(nil)
		m.printf("Task unassigned.\n")
		return
	}
	task.SetAssignee(member)
	m.printf("Assigned to %s\n", member.Name)
}

func (m *Menu) deleteTask(story *models.UserStory) {
	task := m.pickTask(story)
	if task == nil {
		return
	}
	story.RemoveTask(task)
	m.printf("Deleted.\n")
}

func (m *Menu) memberMenu() {
	for {
		m.header("Team Members")
		m.listMembers()
		m.printf("1. Add member\n2. Update member\n3. Delete member\n4. Back\n")
		switch m.prompt("Choose an option") {
		case "1":
			m.createMember()
		case "2":
			m.updateMember()
		case "3":
			m.deleteMember()
		case "4", "":
			return
		default:
			m.errorf("Invalid option")
		}
		if m.done() {
			return
		}
	}
}

func (m *Menu) listMembers() {
	members := m.reg.TeamMembers()
	if len(members) == 0 {
		m.printf("%s\n", dimStyle.Render("No team members yet."))
		return
	}
	for i, member := range members {
		m.printf("%d) %s <%s>  %s  %d open tasks\n",
			i+1, member.Name, member.Email, member.Role,
			len(member.AssignedTasks())-m.reg.CompletedTaskCount(member))
	}
}

func (m *Menu) createMember() {
	name := m.prompt("Name")
	if name == "" {
		m.errorf("Name is required")
		return
	}
	email := m.prompt("Email")
	externalUsername := m.prompt("GitHub username")
	member := models.NewTeamMember(name, email, externalUsername)
	if role := m.prompt("Role (blank for default)"); role != "" {
		member.Role = role
	}
	m.reg.AddTeamMember(member)
	m.printf("Added %s\n", member.Name)
}

func (m *Menu) updateMember() {
	member := m.pickMember()
	if member == nil {
		return
	}
	if name := m.prompt("New name (blank keeps current)"); name != "" {
		member.Name = name
	}
	if email := m.prompt("New email (blank keeps current)"); email != "" {
		member.Email = email
	}
	if username := m.prompt("New GitHub username (blank keeps current)"); username != "" {
		member.ExternalUsername = username
	}
	if role := m.prompt("New role (blank keeps current)"); role != "" {
		member.Role = role
	}
	m.printf("Updated %s\n", member.Name)
}

func (m *Menu) deleteMember() {
	member := m.pickMember()
	if member == nil {
		return
	}
	m.reg.RemoveTeamMember(member)
	m.printf("Removed. Their tasks are now unassigned.\n")
}

func (m *Menu) githubMenu() {
	for {
		m.header("GitHub Integration")
		m.printf("1. List issues\n2. Import issues into current sprint\n3. Back\n")
		switch m.prompt("Choose an option") {
		case "1":
			m.listIssues()
		case "2":
			m.importIssues()
		case "3", "":
			return
		default:
			m.errorf("Invalid option")
		}
		if m.done() {
			return
		}
	}
}

func (m *Menu) listIssues() {
	owner := m.prompt("Repository owner")
	repo := m.prompt("Repository name")
	if owner == "" || repo == "" {
		m.errorf("Owner and repository are required")
		return
	}
	issues, err := m.issues.ListIssues(context.Background(), owner, repo)
	if err != nil {
		m.errorf("Fetch issues: %v", err)
		return
	}
	for _, issue := range issues {
		m.printf("#%d %s [%s] %s\n", issue.ID, issue.Title, issue.State, strings.Join(issue.Labels, ", "))
	}
}

func (m *Menu) importIssues() {
	sprint := m.reg.CurrentSprint()
	if sprint == nil {
		m.errorf("No sprint selected. Select a current sprint first.")
		return
	}
	owner := m.prompt("Repository owner")
	repo := m.prompt("Repository name")
	if owner == "" || repo == "" {
		m.errorf("Owner and repository are required")
		return
	}
	issues, err := m.issues.ListIssues(context.Background(), owner, repo)
	if err != nil {
		m.errorf("Fetch issues: %v", err)
		return
	}
	result := github.ConvertIssues(issues, sprint, nil, m.storyLabel, m.reg)
	m.printf("Imported %d stories and %d tasks into %q\n",
		result.StoriesCreated, result.TasksCreated, sprint.Name)
}

func (m *Menu) statistics() {
	m.header("Statistics")

	active := m.reg.ActiveSprintsByEndDate()
	if len(active) == 0 {
		m.printf("%s\n", dimStyle.Render("No active sprints."))
	} else {
		m.printf("Active sprints by end date:\n")
		for _, sprint := range active {
			m.printf("  %s  ends %s  %d%% done\n",
				sprint.Name, models.FormatDate(sprint.EndDate), sprint.CompletionPercentage())
		}
	}

	urgent := m.reg.HighPriorityStories()
	if len(urgent) == 0 {
		m.printf("%s\n", dimStyle.Render("No high-priority stories."))
		return
	}
	m.printf("High-priority stories:\n")
	for _, story := range urgent {
		line := fmt.Sprintf("  [%s] %s  %d pts  %d%% done",
			story.Priority, story.Title, story.StoryPoints, story.CompletionPercentage())
		if story.Priority == models.PriorityCritical {
			line = errorStyle.Render(line)
		}
		m.printf("%s\n", line)
	}
}

func (m *Menu) save() {
	if err := m.store.Save(m.reg); err != nil {
		m.logger.Error("save data", "error", err)
		m.errorf("Save failed: %v", err)
		return
	}
	m.printf("Data saved to %s\n", m.store.Dir())
}

// Pickers. Each lists the candidates, reads a 1-based index, and returns
// nil on empty or invalid input.

func (m *Menu) pickSprint() *models.Sprint {
	sprints := m.reg.Sprints()
	if len(sprints) == 0 {
		m.errorf("No sprints yet")
		return nil
	}
	m.listSprints()
	return pickIndex(sprints, m.prompt("Sprint number"))
}

func (m *Menu) pickStory(sprint *models.Sprint) *models.UserStory {
	stories := sprint.Stories()
	if len(stories) == 0 {
		m.errorf("No stories yet")
		return nil
	}
	m.listStories(sprint)
	return pickIndex(stories, m.prompt("Story number"))
}

func (m *Menu) pickTask(story *models.UserStory) *models.Task {
	tasks := story.Tasks()
	if len(tasks) == 0 {
		m.errorf("No tasks yet")
		return nil
	}
	m.listTasks(story)
	return pickIndex(tasks, m.prompt("Task number"))
}

func (m *Menu) pickMember() *models.TeamMember {
	members := m.reg.TeamMembers()
	if len(members) == 0 {
		m.errorf("No team members yet")
		return nil
	}
	m.listMembers()
	return pickIndex(members, m.prompt("Member number (blank for none)"))
}

func pickIndex[T any](items []*T, raw string) *T {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || index < 1 || index > len(items) {
		return nil
	}
	return items[index-1]
}

func (m *Menu) header(title string) {
	m.printf("\n%s\n", headerStyle.Render("== "+title+" =="))
}

func (m *Menu) prompt(label string) string {
	m.printf("%s: ", label)
	if !m.in.Scan() {
		m.eof = true
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) errorf(format string, args ...any) {
	m.printf("%s\n", errorStyle.Render(fmt.Sprintf(format, args...)))
}

// done reports whether input is exhausted, which ends every loop so a
// scripted or piped session terminates cleanly.
func (m *Menu) done() bool {
	return m.eof
}
