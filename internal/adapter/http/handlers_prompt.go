package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
)

// ListPrompts handles GET /api/v1/prompts
func (h *Handlers) ListPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	f := prompt.ListFilter{
		Scenario:  q.Get("scenario"),
		LengthBin: prompt.LengthBin(q.Get("length_bin")),
		Limit:     limit,
	}
	prompts, err := h.Prompts.List(r.Context(), f)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prompts)
}

// CreatePrompt handles POST /api/v1/prompts
func (h *Handlers) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[prompt.CreateRequest](w, r)
	if !ok {
		return
	}
	p, err := h.Prompts.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "create prompt")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetPrompt handles GET /api/v1/prompts/{id}
func (h *Handlers) GetPrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Prompts.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "prompt not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePrompt handles DELETE /api/v1/prompts/{id}
func (h *Handlers) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Prompts.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, "prompt not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
