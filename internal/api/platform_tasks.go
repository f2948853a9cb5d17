package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
	"github.com/t4tarzan/seaclaw-platform/internal/plantasks"
)

func (s *Server) handlePlatformTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := plantasks.Filter{
		Phase:  q.Get("phase"),
		Status: q.Get("status"),
	}
	if sprint := q.Get("sprint"); sprint != "" {
		n, err := strconv.Atoi(sprint)
		if err != nil {
			s.writeError(w, domainerr.Validation("sprint must be an integer, got %q", sprint))
			return
		}
		filter.Sprint = n
	}

	tasks, err := s.tasks.Query(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks, "count": len(tasks)})
}

type patchPlatformTaskBody struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func (s *Server) handlePatchPlatformTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	var body patchPlatformTaskBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if body.Status == nil && body.Notes == nil {
		s.writeError(w, domainerr.Validation("patch must set at least one of status, notes"))
		return
	}

	var status, notes string
	if body.Status != nil {
		status = *body.Status
	}
	if body.Notes != nil {
		notes = *body.Notes
	}

	if _, err := s.tasks.Update(r.Context(), taskID, status, notes); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
