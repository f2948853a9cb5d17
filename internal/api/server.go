// Package api implements the HTTP API Surface (spec §4.7): request parsing,
// validation, dispatch to the Instance Orchestrator / Relay / Swarm
// Controller / Plan Tracker Store, and response shaping. Errors carry an HTTP
// status per spec §7.
//
// Grounded on apps/ReleaseParty/backend/internal/api/server.go's Server
// struct + chi.Router + writeJSON idiom, and agents/dashboard/main.go's
// hand-rolled corsMiddleware (adapted to restrict origins via config).
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
	"github.com/t4tarzan/seaclaw-platform/internal/orchestrator"
	"github.com/t4tarzan/seaclaw-platform/internal/plantasks"
	"github.com/t4tarzan/seaclaw-platform/internal/relay"
	"github.com/t4tarzan/seaclaw-platform/internal/swarm"
)

// Server is the HTTP API Surface.
type Server struct {
	orch      *orchestrator.Orchestrator
	relay     *relay.Relay
	swarm     *swarm.Controller
	tasks     *plantasks.Store
	log       *log.Logger
	allowCORS string
}

// New builds a Server. allowCORS is the Access-Control-Allow-Origin value
// (empty disables the CORS middleware entirely).
func New(orch *orchestrator.Orchestrator, rl *relay.Relay, sw *swarm.Controller, tasks *plantasks.Store, logger *log.Logger, allowCORS string) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "seaclaw-platform ", log.LstdFlags|log.LUTC)
	}
	return &Server{orch: orch, relay: rl, swarm: sw, tasks: tasks, log: logger, allowCORS: allowCORS}
}

// Router builds the chi router with every endpoint from spec §6's table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.allowCORS != "" {
		r.Use(s.corsMiddleware)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/agents", func(r chi.Router) {
			r.Post("/create", s.handleCreateAgent)
			r.Get("/", s.handleListAgents)

			r.Route("/{username}", func(r chi.Router) {
				r.Get("/", s.handleGetAgent)
				r.Delete("/", s.handleDeleteAgent)
				r.Post("/restart", s.handleRestartAgent)
				r.Patch("/config", s.handlePatchConfig)
				r.Post("/chat", s.handleChat)
				r.Post("/project", s.handleCreateProject)
				r.Get("/workspace", s.handleWorkspace)
				r.Get("/tasks", s.handleAgentTasks)
				r.Post("/workers", s.handleSpawnWorker)
				r.Get("/workers", s.handleListWorkers)
				r.Delete("/workers/{worker}", s.handleTerminateWorker)
				r.Post("/relay", s.handleRelay)
			})
		})

		r.Route("/platform/tasks", func(r chi.Router) {
			r.Get("/", s.handlePlatformTasks)
			r.Patch("/{id}", s.handlePatchPlatformTask)
		})
	})

	return r
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowCORS)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status (spec §7) and writes
// {"error": "..."}. Errors that are not a *domainerr.Error are treated as an
// unexpected internal failure (500), and logged since they represent a gap in
// the typed-error contract every component is expected to uphold.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if de, ok := domainerr.As(err); ok {
		writeJSON(w, de.Status(), map[string]string{"error": de.Error()})
		return
	}
	s.log.Printf("unhandled error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return domainerr.Validation("invalid request body: %v", err)
	}
	return nil
}

func usernameParam(r *http.Request) string {
	return chi.URLParam(r, "username")
}
