package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
	"github.com/t4tarzan/seaclaw-platform/internal/swarm"
)

type spawnWorkerBody struct {
	Task       string `json:"task"`
	WorkerName string `json:"worker_name"`
	Persona    string `json:"soul"`
	TTLSeconds int    `json:"ttl_seconds"`
}

func (s *Server) handleSpawnWorker(w http.ResponseWriter, r *http.Request) {
	var body spawnWorkerBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if body.Persona == "" {
		body.Persona = "alex"
	}
	if body.TTLSeconds == 0 {
		body.TTLSeconds = 300
	}
	if len(body.Task) < 1 || len(body.Task) > 4096 {
		s.writeError(w, domainerr.Validation("task length must be between 1 and 4096, got %d", len(body.Task)))
		return
	}
	if err := validateTTLSeconds(body.TTLSeconds); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.swarm.Spawn(r.Context(), usernameParam(r), swarm.SpawnRequest{
		Task:       body.Task,
		WorkerName: body.WorkerName,
		Persona:    body.Persona,
		TTLSeconds: body.TTLSeconds,
	}, time.Now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "spawning",
		"worker_username": result.WorkerUsername,
		"workload_name":   result.WorkloadName,
		"task":            result.Task,
		"ttl_seconds":     result.TTLSeconds,
	})
}

func (s *Server) handleListWorkers(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	workers, err := s.swarm.List(r.Context(), username)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"coordinator": username,
		"workers":     workers,
		"count":       len(workers),
	})
}

func (s *Server) handleTerminateWorker(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	workerID := chi.URLParam(r, "worker")
	if err := s.swarm.Terminate(r.Context(), username, workerID); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "terminated"})
}

type relayBody struct {
	FromAgent string `json:"from_agent"`
	Message   string `json:"message"`
}

func (s *Server) handleRelay(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	var body relayBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validateMessage(body.Message); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.swarm.RelayToCoordinator(r.Context(), username, body.FromAgent, body.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"to":       username,
		"from":     body.FromAgent,
		"response": result,
	})
}
