package http

import (
	"net/http"
	"strconv"

	"github.com/mozeyada/cybercqbench/internal/domain/analytics"
)

// LengthBinReport handles GET /api/v1/analytics/length-bins
//
// An empty run set yields 200 with empty bins and no ranking; the dashboard
// renders its "run more experiments" placeholder from that, it is not an
// error condition.
func (h *Handlers) LengthBinReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := analytics.Filter{
		Scenario: q.Get("scenario"),
		Models:   splitCSV(q.Get("models")),
	}

	volume := 0.0
	if v := q.Get("volume"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "volume must be a positive number")
			return
		}
		volume = parsed
	}

	report, err := h.Analytics.LengthBins(r.Context(), f, volume)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// CostByModel handles GET /api/v1/analytics/costs/models
func (h *Handlers) CostByModel(w http.ResponseWriter, r *http.Request) {
	out, err := h.Analytics.CostByModel(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// CostByScenario handles GET /api/v1/analytics/costs/scenarios
func (h *Handlers) CostByScenario(w http.ResponseWriter, r *http.Request) {
	out, err := h.Analytics.CostByScenario(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// CostDaily handles GET /api/v1/analytics/costs/daily
func (h *Handlers) CostDaily(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	out, err := h.Analytics.CostDaily(r.Context(), days)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
