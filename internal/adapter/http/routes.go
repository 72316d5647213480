package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Prompts
		r.Get("/prompts", h.ListPrompts)
		r.Post("/prompts", h.CreatePrompt)
		r.Get("/prompts/{id}", h.GetPrompt)
		r.Delete("/prompts/{id}", h.DeletePrompt)

		// Runs
		r.Post("/runs", h.SubmitRuns)
		r.Get("/runs", h.ListRuns)
		r.Get("/runs/{id}", h.GetRun)
		r.Delete("/runs/{id}", h.DeleteRun)
		r.Post("/runs/{id}/result", h.ApplyRunResult)

		// Analytics
		r.Get("/analytics/length-bins", h.LengthBinReport)
		r.Get("/analytics/costs/models", h.CostByModel)
		r.Get("/analytics/costs/scenarios", h.CostByScenario)
		r.Get("/analytics/costs/daily", h.CostDaily)
	})
}
