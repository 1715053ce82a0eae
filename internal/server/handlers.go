package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"strack/internal/api"
	"strack/internal/models"
)

const defaultJSONMaxBody = 1 << 20 // 1 MiB

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

// writeError derives the HTTP status from the error's apiError wrapper and
// writes the JSON error body. Unwrapped errors default to 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorReq(w, r, httpStatusFromError(err), err)
}

func (s *Server) writeErrorReq(w http.ResponseWriter, r *http.Request, status int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	code := errorCode(status, err)
	message := err.Error()

	fields := []any{"status", status, "code", code, "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	}

	switch {
	case status >= 500:
		s.log().Error("request error", fields...)
		message = "internal error"
	case status >= 400:
		s.log().Debug("request rejected", fields...)
	}

	s.writeJSON(w, status, api.ErrorResponse{Error: message, Code: code})
}

type apiError struct {
	status int
	code   string
	err    error
}

func (e apiError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e apiError) Unwrap() error { return e.err }

func makeAPIError(status int, code string, err error) error {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	var existing apiError
	if errors.As(err, &existing) && existing.status != 0 {
		return existing
	}
	return apiError{status: status, code: code, err: err}
}

func badRequest(err error) error {
	return makeAPIError(http.StatusBadRequest, "invalid_argument", err)
}

func notFound(err error) error {
	return makeAPIError(http.StatusNotFound, "not_found", err)
}

func storeFailure(err error) error {
	return makeAPIError(http.StatusInternalServerError, "store_failure", err)
}

func httpStatusFromError(err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) {
		return apiErr.status
	}
	return http.StatusInternalServerError
}

func errorCode(status int, err error) string {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.code != "" {
		return apiErr.code
	}
	switch status {
	case http.StatusBadRequest:
		return "invalid_argument"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusInternalServerError:
		return "internal"
	default:
		return ""
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, defaultJSONMaxBody)
	return json.NewDecoder(r.Body).Decode(dst)
}

func classifyDecodeJSONError(err error) error {
	if err == nil {
		return nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return badRequest(fmt.Errorf("request body too large"))
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return badRequest(fmt.Errorf("invalid JSON payload"))
	}
	return badRequest(err)
}

func (s *Server) decodeJSONReq(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		s.writeError(w, r, classifyDecodeJSONError(err))
		return false
	}
	return true
}

// persist saves the registry after a mutation. On failure the mutation
// stays applied in memory, the client gets a 500, and a later successful
// write will land the whole state.
func (s *Server) persist(w http.ResponseWriter, r *http.Request) bool {
	if err := s.store.Save(s.reg); err != nil {
		s.writeError(w, r, storeFailure(err))
		return false
	}
	return true
}

// Path resolution helpers. Each writes a 404 and returns nil on a miss.

func (s *Server) sprintOr404(w http.ResponseWriter, r *http.Request) *models.Sprint {
	id := r.PathValue("sid")
	sprint := s.reg.SprintByID(id)
	if sprint == nil {
		s.writeError(w, r, notFound(fmt.Errorf("sprint %s not found", id)))
		return nil
	}
	return sprint
}

func (s *Server) storyOr404(w http.ResponseWriter, r *http.Request) *models.UserStory {
	sprint := s.sprintOr404(w, r)
	if sprint == nil {
		return nil
	}
	id := r.PathValue("yid")
	story := sprint.StoryByID(id)
	if story == nil {
		s.writeError(w, r, notFound(fmt.Errorf("user story %s not found", id)))
		return nil
	}
	return story
}

func (s *Server) taskOr404(w http.ResponseWriter, r *http.Request) *models.Task {
	story := s.storyOr404(w, r)
	if story == nil {
		return nil
	}
	id := r.PathValue("tid")
	task := story.TaskByID(id)
	if task == nil {
		s.writeError(w, r, notFound(fmt.Errorf("task %s not found", id)))
		return nil
	}
	return task
}
