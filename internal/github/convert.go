package github

import (
	"strconv"
	"strings"

	"strack/internal/models"
)

const (
	priorityLabelPrefix = "priority:"
	pointsLabelPrefix   = "points:"

	// DefaultStoryLabel marks an issue as a user story rather than a task.
	DefaultStoryLabel = "user-story"
)

// MemberResolver finds a team member for an external username. The registry
// satisfies it.
type MemberResolver interface {
	TeamMemberByExternalUsername(username string) *models.TeamMember
}

// ImportResult counts what ConvertIssues created.
type ImportResult struct {
	StoriesCreated int
	TasksCreated   int
}

// ConvertIssues maps issues into the sprint. Issues carrying storyLabel
// become user stories; everything else becomes a task on targetStory if
// given, else on the first available story, else on a synthesized
// "GitHub Issues" story. A closed issue imports as DONE. An assignee whose
// username matches a member's external username is assigned.
func ConvertIssues(issues []Issue, sprint *models.Sprint, targetStory *models.UserStory, storyLabel string, members MemberResolver) ImportResult {
	if storyLabel == "" {
		storyLabel = DefaultStoryLabel
	}

	var result ImportResult
	var created []*models.UserStory
	var taskIssues []Issue

	for _, issue := range issues {
		if issue.HasLabel(storyLabel) {
			story := models.NewUserStory(
				issue.Title,
				issue.Body,
				labelPriority(issue.Labels),
				labelPoints(issue.Labels),
			)
			sprint.AddStory(story)
			created = append(created, story)
			result.StoriesCreated++
			continue
		}
		taskIssues = append(taskIssues, issue)
	}

	if len(taskIssues) == 0 {
		return result
	}

	home := targetStory
	if home == nil && len(created) > 0 {
		home = created[0]
	}
	if home == nil && len(sprint.Stories()) > 0 {
		home = sprint.Stories()[0]
	}
	if home == nil {
		home = models.NewUserStory("GitHub Issues", "Tasks imported from GitHub issues", models.PriorityMedium, 0)
		sprint.AddStory(home)
		result.StoriesCreated++
	}

	for _, issue := range taskIssues {
		task := models.NewTask(issue.Title, issue.Body)
		task.GithubIssueURL = issue.URL
		if issue.State == "closed" {
			task.Status = models.StatusDone
		}
		home.AddTask(task)
		if issue.AssigneeUsername != "" {
			if member := members.TeamMemberByExternalUsername(issue.AssigneeUsername); member != nil {
				task.SetAssignee(member)
			}
		}
		result.TasksCreated++
	}
	return result
}

// labelPriority reads a priority:<level> label, defaulting to MEDIUM.
func labelPriority(labels []string) models.Priority {
	for _, label := range labels {
		if rest, ok := strings.CutPrefix(label, priorityLabelPrefix); ok {
			return models.PriorityOrDefault(rest)
		}
	}
	return models.PriorityMedium
}

// labelPoints reads a points:<n> label, defaulting to 3.
func labelPoints(labels []string) int {
	for _, label := range labels {
		if rest, ok := strings.CutPrefix(label, pointsLabelPrefix); ok {
			if points, err := strconv.Atoi(rest); err == nil {
				return points
			}
		}
	}
	return models.DefaultStoryPoints
}
