// Package store persists the registry as two JSON documents in a data
// directory: team_members.json and sprints.json. Cross-references between
// the files are name/ID strings that the two-pass loader resolves back into
// live object links.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"strack/internal/models"
	"strack/internal/registry"
)

const (
	membersFileName = "team_members.json"
	sprintsFileName = "sprints.json"
)

// IOError wraps a filesystem failure while reading or writing a store file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("store io %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// FormatError wraps unparseable or mis-shaped JSON in a store file.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string { return fmt.Sprintf("store format %s: %v", e.Path, e.Err) }
func (e *FormatError) Unwrap() error { return e.Err }

type memberRecord struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email,omitempty"`
	ExternalUsername string `json:"externalUsername,omitempty"`
	Role             string `json:"role,omitempty"`
}

type taskRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	// GithubIssueURL is present only for imported issues.
	GithubIssueURL string `json:"githubIssueUrl,omitempty"`
	// AssignedTeamMember holds the member's name, the historical reference
	// format. AssignedTeamMemberID is written alongside and preferred on
	// read so renaming a member cannot orphan its assignments.
	AssignedTeamMember   string `json:"assignedTeamMember,omitempty"`
	AssignedTeamMemberID string `json:"assignedTeamMemberId,omitempty"`
}

type storyRecord struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    string       `json:"priority"`
	StoryPoints int          `json:"storyPoints"`
	Tasks       []taskRecord `json:"tasks"`
}

type sprintRecord struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Goal        string        `json:"goal,omitempty"`
	Active      bool          `json:"active"`
	UserStories []storyRecord `json:"userStories"`
}

type sprintsFile struct {
	CurrentSprintID string         `json:"currentSprintId,omitempty"`
	Sprints         []sprintRecord `json:"sprints"`
}

// Store reads and writes the registry under a data directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Save writes the full registry state, members first, then sprints. Each
// file is written to a temp file and renamed into place so a crash cannot
// leave a torn document.
func (s *Store) Save(reg *registry.Registry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &IOError{Path: s.dir, Err: err}
	}
	if err := s.saveMembers(reg.TeamMembers()); err != nil {
		return err
	}
	return s.saveSprints(reg.Sprints(), reg.CurrentSprint())
}

func (s *Store) saveMembers(members []*models.TeamMember) error {
	records := make([]memberRecord, 0, len(members))
	for _, member := range members {
		records = append(records, memberRecord{
			ID:               member.ID,
			Name:             member.Name,
			Email:            member.Email,
			ExternalUsername: member.ExternalUsername,
			Role:             member.Role,
		})
	}
	return s.writeFile(membersFileName, records)
}

func (s *Store) saveSprints(sprints []*models.Sprint, current *models.Sprint) error {
	file := sprintsFile{Sprints: make([]sprintRecord, 0, len(sprints))}
	if current != nil {
		file.CurrentSprintID = current.ID
	}
	for _, sprint := range sprints {
		record := sprintRecord{
			ID:          sprint.ID,
			Name:        sprint.Name,
			StartDate:   models.FormatDate(sprint.StartDate),
			EndDate:     models.FormatDate(sprint.EndDate),
			Goal:        sprint.Goal,
			Active:      sprint.Active,
			UserStories: []storyRecord{},
		}
		for _, story := range sprint.Stories() {
			storyRec := storyRecord{
				ID:          story.ID,
				Title:       story.Title,
				Description: story.Description,
				Priority:    string(story.Priority),
				StoryPoints: story.StoryPoints,
				Tasks:       []taskRecord{},
			}
			for _, task := range story.Tasks() {
				taskRec := taskRecord{
					ID:             task.ID,
					Title:          task.Title,
					Description:    task.Description,
					Status:         string(task.Status),
					GithubIssueURL: task.GithubIssueURL,
				}
				if assignee := task.Assignee(); assignee != nil {
					taskRec.AssignedTeamMember = assignee.Name
					taskRec.AssignedTeamMemberID = assignee.ID
				}
				storyRec.Tasks = append(storyRec.Tasks, taskRec)
			}
			record.UserStories = append(record.UserStories, storyRec)
		}
		file.Sprints = append(file.Sprints, record)
	}
	return s.writeFile(sprintsFileName, file)
}

func (s *Store) writeFile(name string, payload any) error {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return &FormatError{Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Path: path, Err: err}
	}
	return nil
}

// Load reconstructs a registry from the store files. Missing files load as
// empty; a task naming an unknown assignee is left unassigned; a missing or
// unknown status normalizes to TO_DO. Callers treat any returned error as
// "start empty".
func (s *Store) Load() (*registry.Registry, error) {
	reg := registry.New()

	members, err := s.loadMembers()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*models.TeamMember, len(members))
	byID := make(map[string]*models.TeamMember, len(members))
	for _, member := range members {
		reg.AddTeamMember(member)
		byName[member.Name] = member
		byID[member.ID] = member
	}

	if err := s.loadSprints(reg, byName, byID); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *Store) loadMembers() ([]*models.TeamMember, error) {
	path := filepath.Join(s.dir, membersFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &IOError{Path: path, Err: err}
	}

	var records []memberRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	members := make([]*models.TeamMember, 0, len(records))
	for _, record := range records {
		member := models.NewTeamMember(record.Name, record.Email, record.ExternalUsername)
		if record.ID != "" {
			member.ID = record.ID
		}
		if record.Role != "" {
			member.Role = record.Role
		}
		members = append(members, member)
	}
	return members, nil
}

func (s *Store) loadSprints(reg *registry.Registry, byName, byID map[string]*models.TeamMember) error {
	path := filepath.Join(s.dir, sprintsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &IOError{Path: path, Err: err}
	}

	var file sprintsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return &FormatError{Path: path, Err: err}
	}

	// Pass 1: construct every sprint with its stored ID so the current
	// pointer and cross-file references resolve before children attach.
	sprints := make(map[string]*models.Sprint, len(file.Sprints))
	for _, record := range file.Sprints {
		start, err := models.ParseDate(record.StartDate)
		if err != nil {
			return &FormatError{Path: path, Err: fmt.Errorf("sprint %s: %w", record.ID, err)}
		}
		end, err := models.ParseDate(record.EndDate)
		if err != nil {
			return &FormatError{Path: path, Err: fmt.Errorf("sprint %s: %w", record.ID, err)}
		}
		sprint := models.NewSprint(record.Name, start, end, record.Goal)
		if record.ID != "" {
			sprint.ID = record.ID
		}
		sprint.Active = record.Active
		reg.AddSprint(sprint)
		sprints[sprint.ID] = sprint
	}
	if file.CurrentSprintID != "" {
		if current, ok := sprints[file.CurrentSprintID]; ok {
			if err := reg.SetCurrentSprint(current); err != nil {
				return err
			}
		}
	}

	// Pass 2: attach stories and tasks, rebuilding assignment links from
	// the member references.
	for _, record := range file.Sprints {
		sprint := sprints[record.ID]
		if sprint == nil {
			continue
		}
		for _, storyRec := range record.UserStories {
			story := models.NewUserStory(
				storyRec.Title,
				storyRec.Description,
				models.PriorityOrDefault(storyRec.Priority),
				storyRec.StoryPoints,
			)
			if storyRec.ID != "" {
				story.ID = storyRec.ID
			}
			sprint.AddStory(story)

			for _, taskRec := range storyRec.Tasks {
				task := models.NewTask(taskRec.Title, taskRec.Description)
				if taskRec.ID != "" {
					task.ID = taskRec.ID
				}
				task.Status = models.NormalizeTaskStatus(taskRec.Status)
				task.GithubIssueURL = taskRec.GithubIssueURL
				story.AddTask(task)

				if member := resolveMember(taskRec, byName, byID); member != nil {
					task.SetAssignee(member)
				}
			}
		}
	}
	return nil
}

// resolveMember prefers the ID reference over the historical name reference.
// An unresolvable reference leaves the task unassigned.
func resolveMember(record taskRecord, byName, byID map[string]*models.TeamMember) *models.TeamMember {
	if record.AssignedTeamMemberID != "" {
		if member, ok := byID[record.AssignedTeamMemberID]; ok {
			return member
		}
	}
	if record.AssignedTeamMember != "" {
		if member, ok := byName[record.AssignedTeamMember]; ok {
			return member
		}
	}
	return nil
}
