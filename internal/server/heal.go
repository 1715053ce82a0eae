package server

import "strack/internal/models"

// healSprint normalizes any task with an empty status to TO_DO and reports
// whether anything changed. Empty statuses come from hand-edited or
// corrupted store files.
func healSprint(sprint *models.Sprint) bool {
	healed := false
	for _, task := range sprint.AllTasks() {
		if task.Status == "" {
			task.Status = models.StatusToDo
			healed = true
		}
	}
	return healed
}

// healOnRead repairs empty task statuses across the given sprints and, if
// anything changed, persists opportunistically. A failed save here is
// logged but not surfaced: the read itself still succeeds and the repair
// lands with the next successful write.
func (s *Server) healOnRead(sprints ...*models.Sprint) {
	healed := false
	for _, sprint := range sprints {
		if healSprint(sprint) {
			healed = true
		}
	}
	if !healed {
		return
	}
	s.log().Info("repaired tasks with missing status")
	if err := s.store.Save(s.reg); err != nil {
		s.log().Warn("persist status repair", "error", err)
	}
}
