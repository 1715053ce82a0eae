package api

import (
	"strack/internal/models"
)

// WireStatus maps the internal status to its external spelling. TO_DO is
// served as "TODO"; the other values pass through.
func WireStatus(status models.TaskStatus) string {
	if status == models.StatusToDo {
		return "TODO"
	}
	return string(status)
}

// NewTaskResponse projects a task, replacing a live assignee reference with
// an {id, name} summary.
func NewTaskResponse(task *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         WireStatus(task.Status),
		GithubIssueURL: task.GithubIssueURL,
	}
	if assignee := task.Assignee(); assignee != nil {
		resp.AssignedTeamMember = &MemberSummary{ID: assignee.ID, Name: assignee.Name}
	}
	return resp
}

func NewStoryResponse(story *models.UserStory) StoryResponse {
	resp := StoryResponse{
		ID:                   story.ID,
		Title:                story.Title,
		Description:          story.Description,
		Priority:             string(story.Priority),
		StoryPoints:          story.StoryPoints,
		CompletionPercentage: story.CompletionPercentage(),
		Tasks:                []TaskResponse{},
	}
	for _, task := range story.Tasks() {
		resp.Tasks = append(resp.Tasks, NewTaskResponse(task))
	}
	return resp
}

func NewSprintResponse(sprint *models.Sprint) SprintResponse {
	resp := SprintResponse{
		ID:                   sprint.ID,
		Name:                 sprint.Name,
		StartDate:            models.FormatDate(sprint.StartDate),
		EndDate:              models.FormatDate(sprint.EndDate),
		Goal:                 sprint.Goal,
		Active:               sprint.Active,
		TotalStoryPoints:     sprint.TotalStoryPoints(),
		CompletionPercentage: sprint.CompletionPercentage(),
		UserStories:          []StoryResponse{},
	}
	for _, story := range sprint.Stories() {
		resp.UserStories = append(resp.UserStories, NewStoryResponse(story))
	}
	return resp
}

func NewSprintList(sprints []*models.Sprint) []SprintResponse {
	list := make([]SprintResponse, 0, len(sprints))
	for _, sprint := range sprints {
		list = append(list, NewSprintResponse(sprint))
	}
	return list
}

// NewMemberResponse projects a member without its assigned-task list.
func NewMemberResponse(member *models.TeamMember) MemberResponse {
	return MemberResponse{
		ID:               member.ID,
		Name:             member.Name,
		Email:            member.Email,
		ExternalUsername: member.ExternalUsername,
		Role:             member.Role,
	}
}

func NewMemberList(members []*models.TeamMember) []MemberResponse {
	list := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		list = append(list, NewMemberResponse(member))
	}
	return list
}
