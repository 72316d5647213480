package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mozeyada/cybercqbench/internal/domain/run"
)

// SubmitRuns handles POST /api/v1/runs
func (h *Handlers) SubmitRuns(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[run.SubmitRequest](w, r)
	if !ok {
		return
	}
	runs, err := h.Runs.Submit(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "prompt not found")
		return
	}
	writeJSON(w, http.StatusCreated, runs)
}

// ListRuns handles GET /api/v1/runs
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	f := run.ListFilter{
		Scenario: q.Get("scenario"),
		Models:   splitCSV(q.Get("models")),
		Status:   run.Status(q.Get("status")),
		Limit:    limit,
	}
	if f.Status != "" && !f.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	runs, err := h.Runs.List(r.Context(), f)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun handles GET /api/v1/runs/{id}
func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rn, err := h.Runs.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, rn)
}

// DeleteRun handles DELETE /api/v1/runs/{id}
func (h *Handlers) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Runs.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, "run not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyRunResult handles POST /api/v1/runs/{id}/result — the HTTP ingestion
// path for workers without a NATS connection.
func (h *Handlers) ApplyRunResult(w http.ResponseWriter, r *http.Request) {
	res, ok := readJSON[run.Result](w, r)
	if !ok {
		return
	}
	res.RunID = chi.URLParam(r, "id")
	rn, err := h.Runs.ApplyResult(r.Context(), &res)
	if err != nil {
		writeDomainError(w, err, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, rn)
}
