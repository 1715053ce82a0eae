package server

import (
	"fmt"
	"net/http"
)

// withRecovery converts a handler panic into a 500 JSON error instead of
// killing the connection. If the response has already been started the
// write is a no-op and only the log line remains.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.writeError(w, r, fmt.Errorf("handler panic: %v", v))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withCORS answers preflight requests and marks every response as
// cross-origin readable. The API carries no credentials, so the policy is
// wide open.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRegistryLock serializes every request against the registry. Handlers
// run with the lock held for their full duration, mutations and the
// follow-up save included, so clients observe a total order of writes.
func (s *Server) withRegistryLock(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.reg.Lock()
		defer s.reg.Unlock()
		next.ServeHTTP(w, r)
	})
}
