package analytics

import (
	"github.com/mozeyada/cybercqbench/internal/domain/run"
)

// FilterRuns returns the order-preserving subset of runs matching f. Only
// succeeded runs pass; scenario and model restrictions apply when set.
func FilterRuns(runs []run.Run, f Filter) []run.Run {
	models := make(map[string]struct{}, len(f.Models))
	for _, m := range f.Models {
		models[m] = struct{}{}
	}

	var out []run.Run
	for _, r := range runs {
		if r.Status != run.StatusSucceeded {
			continue
		}
		if f.Scenario != "" && r.Scenario != f.Scenario {
			continue
		}
		if len(models) > 0 {
			if _, ok := models[r.Model]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// contributes reports whether a filtered run participates in bin statistics:
// it must fall in a known length bin, carry a positive composite score, and
// not be flagged as a failed evaluation. Runs failing this are silently
// excluded, treated as not yet scored rather than as an error.
func contributes(r run.Run) bool {
	if !r.LengthBin.Valid() {
		return false
	}
	if r.EvaluationFailed {
		return false
	}
	return r.Scores.Composite > 0
}
