// Package prompt defines the benchmark prompt entity. Each prompt is one
// cybersecurity task variant; the same task is authored in short, medium and
// long form so runs can be compared across prompt length.
package prompt

import (
	"fmt"
	"time"

	"github.com/mozeyada/cybercqbench/internal/domain"
)

// LengthBin is the categorical prompt-length bucket used as the grouping key
// for comparative analysis.
type LengthBin string

const (
	BinShort  LengthBin = "S"
	BinMedium LengthBin = "M"
	BinLong   LengthBin = "L"
)

// CanonicalBins is the display and tie-break ordering for length bins.
var CanonicalBins = []LengthBin{BinShort, BinMedium, BinLong}

// Valid reports whether b is one of the three known bins.
func (b LengthBin) Valid() bool {
	return b == BinShort || b == BinMedium || b == BinLong
}

// Benchmark scenario identifiers.
const (
	ScenarioSOCIncident = "SOC_INCIDENT"
	ScenarioCTISummary  = "CTI_SUMMARY"
	ScenarioGRCMapping  = "GRC_MAPPING"
)

// Prompt is a single task variant presented to models under test.
type Prompt struct {
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario"`
	LengthBin  LengthBin `json:"length_bin"`
	Text       string    `json:"text"`
	Source     string    `json:"source,omitempty"` // dataset provenance
	TokenCount int       `json:"token_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateRequest is the payload for registering a new prompt.
type CreateRequest struct {
	Scenario   string    `json:"scenario"`
	LengthBin  LengthBin `json:"length_bin"`
	Text       string    `json:"text"`
	Source     string    `json:"source,omitempty"`
	TokenCount int       `json:"token_count,omitempty"`
}

// Validate checks required fields on a CreateRequest.
func (r *CreateRequest) Validate() error {
	if r.Scenario == "" {
		return fmt.Errorf("%w: scenario is required", domain.ErrValidation)
	}
	if !r.LengthBin.Valid() {
		return fmt.Errorf("%w: length_bin must be one of S, M, L", domain.ErrValidation)
	}
	if r.Text == "" {
		return fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	return nil
}

// ListFilter narrows prompt listings.
type ListFilter struct {
	Scenario  string
	LengthBin LengthBin
	Limit     int
}
