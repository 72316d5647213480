// Package run defines the experiment run entity: one execution of a model
// against a prompt variant, with the resulting quality score and cost.
package run

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mozeyada/cybercqbench/internal/domain"
	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
)

// Status represents the lifecycle state of a run.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusRunning, StatusSucceeded, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s is an end state.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Scores holds the judge evaluation output for a run. Composite is the single
// scalar quality score in [0, 5] aggregating the rubric dimensions; Rubric
// keeps the per-dimension breakdown opaque to this service.
type Scores struct {
	Composite float64         `json:"composite"`
	Rubric    json.RawMessage `json:"rubric,omitempty"`
	Judge     string          `json:"judge,omitempty"`
}

// Economics holds the monetary outcome of a run.
type Economics struct {
	AUDCost float64 `json:"aud_cost"`
}

// Tokens holds token counts reported by the provider.
type Tokens struct {
	Input  int64 `json:"input"`
	Output int64 `json:"output"`
	Total  int64 `json:"total"`
}

// Run represents a single (prompt, model) execution outcome.
//
// EvaluationFailed is set when the judge fell back to a zero score because of
// an evaluation error; such runs are excluded from aggregation so a failed
// judge is never mistaken for a legitimate score of zero.
type Run struct {
	ID               string           `json:"id"`
	PromptID         string           `json:"prompt_id"`
	Model            string           `json:"model"`
	Scenario         string           `json:"scenario"`
	LengthBin        prompt.LengthBin `json:"prompt_length_bin,omitempty"` // empty when unknown
	Status           Status           `json:"status"`
	Scores           Scores           `json:"scores"`
	Economics        Economics        `json:"economics"`
	Tokens           Tokens           `json:"tokens"`
	EvaluationFailed bool             `json:"evaluation_failed,omitempty"`
	Error            string           `json:"error,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
}

// SubmitRequest asks for one queued run per listed model against a prompt.
type SubmitRequest struct {
	PromptID string   `json:"prompt_id"`
	Models   []string `json:"models"`
}

// Validate checks required fields on a SubmitRequest.
func (r *SubmitRequest) Validate() error {
	if r.PromptID == "" {
		return fmt.Errorf("%w: prompt_id is required", domain.ErrValidation)
	}
	if len(r.Models) == 0 {
		return fmt.Errorf("%w: at least one model is required", domain.ErrValidation)
	}
	for _, m := range r.Models {
		if m == "" {
			return fmt.Errorf("%w: model name must not be empty", domain.ErrValidation)
		}
	}
	return nil
}

// Result is the outcome an evaluation worker reports for a run.
type Result struct {
	RunID            string    `json:"run_id"`
	Status           Status    `json:"status"`
	Scores           Scores    `json:"scores"`
	Economics        Economics `json:"economics"`
	Tokens           Tokens    `json:"tokens"`
	EvaluationFailed bool      `json:"evaluation_failed,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// Validate checks a worker result before it is applied.
func (r *Result) Validate() error {
	if r.RunID == "" {
		return fmt.Errorf("%w: run_id is required", domain.ErrValidation)
	}
	if !r.Status.Terminal() {
		return fmt.Errorf("%w: result status must be succeeded or failed", domain.ErrValidation)
	}
	if r.Scores.Composite < 0 || r.Scores.Composite > 5 {
		return fmt.Errorf("%w: composite score must be in [0, 5]", domain.ErrValidation)
	}
	if r.Economics.AUDCost < 0 {
		return fmt.Errorf("%w: aud_cost must be non-negative", domain.ErrValidation)
	}
	return nil
}

// ListFilter narrows run listings.
type ListFilter struct {
	Scenario string
	Models   []string
	Status   Status
	Limit    int
}
