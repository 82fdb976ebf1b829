package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Bandplan/internal/store"
)

const maxListLimit = 500

type RunsHandler struct {
	store  store.Store
	logger *slog.Logger
}

func NewRunsHandler(s store.Store, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{store: s, logger: logger}
}

func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		if n > maxListLimit {
			n = maxListLimit
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid offset"})
			return
		}
		filter.Offset = n
	}

	runs, err := h.store.ListRuns(r.Context(), filter)
	if err != nil {
		h.internalError(w, "list runs", err)
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *RunsHandler) Scores(w http.ResponseWriter, r *http.Request) {
	h.writeScores(w, r, false)
}

// Pareto returns only the non-dominated scenarios of a run.
func (h *RunsHandler) Pareto(w http.ResponseWriter, r *http.Request) {
	h.writeScores(w, r, true)
}

func (h *RunsHandler) writeScores(w http.ResponseWriter, r *http.Request, paretoOnly bool) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	scores, err := h.store.GetScenarioScores(r.Context(), run.ID)
	if err != nil {
		h.internalError(w, "get scenario scores", err)
		return
	}
	out := make([]store.ScenarioScore, 0, len(scores))
	for _, s := range scores {
		if paretoOnly && !s.Pareto {
			continue
		}
		out = append(out, s)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RunsHandler) loadRun(w http.ResponseWriter, r *http.Request) (*store.Run, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid run id"})
		return nil, false
	}
	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		h.internalError(w, "get run", err)
		return nil, false
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return nil, false
	}
	return run, true
}

func (h *RunsHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op+" failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
