package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/redditbot/pkg/tools"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"tools":   len(s.tools.Tools()),
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listToolsHandler returns tool definitions with their parameters
func (s *Server) listToolsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.tools.Tools())
}

// callToolHandler runs a tool with the JSON object body as arguments. Tool failures are
// reported in the result with is_error set, not as HTTP errors.
func (s *Server) callToolHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, ok := s.tools.Get(name); !ok {
		renderError(w, r, fmt.Errorf("unknown tool %q", name), http.StatusNotFound)
		return
	}

	args := tools.Args{}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("[WARN] invalid arguments for %s: %v", name, err)
		renderError(w, r, fmt.Errorf("invalid arguments: %w", err), http.StatusBadRequest)
		return
	}

	renderJSON(w, r, http.StatusOK, s.tools.Call(r.Context(), name, args))
}
