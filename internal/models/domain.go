package models

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus defines the lifecycle states for tasks. The canonical store
// spelling uses underscores (TO_DO); the parser accepts historical aliases.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "TO_DO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// Priority defines the urgency levels for user stories, ordered LOW < MEDIUM
// < HIGH < CRITICAL.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

const (
	DefaultStoryPoints = 3
	DefaultMemberRole  = "Team Member"

	// DateLayout is the calendar-date format used in the store and over HTTP.
	DateLayout = "2006-01-02"
)

var statusAliases = map[string]TaskStatus{
	"TO_DO":       StatusToDo,
	"TODO":        StatusToDo,
	"IN_PROGRESS": StatusInProgress,
	"INPROGRESS":  StatusInProgress,
	"DONE":        StatusDone,
}

var priorityRank = map[Priority]int{
	PriorityLow:      0,
	PriorityMedium:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

// ParseTaskStatus resolves a status string to its canonical value. It accepts
// the canonical names plus common aliases ("TODO", "to do", "in progress"),
// case-insensitively. An empty string resolves to TO_DO.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	normalized := normalizeEnum(raw)
	if normalized == "" {
		return StatusToDo, nil
	}
	if status, ok := statusAliases[normalized]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid status: %s", raw)
}

// NormalizeTaskStatus resolves like ParseTaskStatus but never fails: unknown
// values fall back to TO_DO. The store loader uses this so a corrupt record
// cannot abort a load.
func NormalizeTaskStatus(raw string) TaskStatus {
	status, err := ParseTaskStatus(raw)
	if err != nil {
		return StatusToDo
	}
	return status
}

// ParsePriority resolves a priority string case-insensitively.
func ParsePriority(raw string) (Priority, error) {
	normalized := normalizeEnum(raw)
	if normalized == "" {
		return "", fmt.Errorf("priority is required")
	}
	value := Priority(normalized)
	if _, ok := priorityRank[value]; !ok {
		return "", fmt.Errorf("invalid priority: %s", raw)
	}
	return value, nil
}

// PriorityOrDefault resolves like ParsePriority but yields MEDIUM for empty
// or unknown input. The issue importer maps free-form labels through this.
func PriorityOrDefault(raw string) Priority {
	value, err := ParsePriority(raw)
	if err != nil {
		return PriorityMedium
	}
	return value
}

// Rank returns the ordering position of a priority, LOW being lowest.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// IsHighPriority reports whether the priority is HIGH or CRITICAL.
func (p Priority) IsHighPriority() bool {
	return p == PriorityHigh || p == PriorityCritical
}

func normalizeEnum(raw string) string {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	return normalized
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(raw string) (time.Time, error) {
	day, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s date: %w", DateLayout, err)
	}
	return day, nil
}

// FormatDate renders a calendar date in YYYY-MM-DD form.
func FormatDate(day time.Time) string {
	return day.Format(DateLayout)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
