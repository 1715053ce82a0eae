package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"strack/internal/registry"
	"strack/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := store.New(t.TempDir())
	reg := registry.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(":0", reg, st, nil, "", logger)
}

func doRequest(t *testing.T, srv *Server, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", badRequest(errors.New("x")), http.StatusBadRequest},
		{"not found", notFound(nil), http.StatusNotFound},
		{"store failure", storeFailure(errors.New("disk")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("context: %w", notFound(nil)), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := httpStatusFromError(tc.err); got != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestUnknownAPIPathReturnsJSON404(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json error body, got content type %q", ct)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPatch, "/api/sprints", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodOptions, "/api/sprints", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Fatalf("allow-origin = %q, want *", origin)
	}
	if methods := w.Header().Get("Access-Control-Allow-Methods"); methods == "" {
		t.Fatal("missing allow-methods header")
	}
}
