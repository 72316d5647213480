package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
	"github.com/mozeyada/cybercqbench/internal/port/database"
)

// PromptService manages benchmark prompts.
type PromptService struct {
	store database.Store
}

// NewPromptService creates a prompt service.
func NewPromptService(store database.Store) *PromptService {
	return &PromptService{store: store}
}

// Create validates and persists a new prompt.
func (s *PromptService) Create(ctx context.Context, req *prompt.CreateRequest) (*prompt.Prompt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tokens := req.TokenCount
	if tokens <= 0 {
		// Rough estimate until a real count arrives with the first run.
		tokens = len(req.Text) / 4
	}
	p := &prompt.Prompt{
		ID:         uuid.New().String(),
		Scenario:   req.Scenario,
		LengthBin:  req.LengthBin,
		Text:       req.Text,
		Source:     req.Source,
		TokenCount: tokens,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreatePrompt(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get retrieves a prompt by ID.
func (s *PromptService) Get(ctx context.Context, id string) (*prompt.Prompt, error) {
	return s.store.GetPrompt(ctx, id)
}

// List returns prompts matching the filter.
func (s *PromptService) List(ctx context.Context, f prompt.ListFilter) ([]prompt.Prompt, error) {
	return s.store.ListPrompts(ctx, f)
}

// Delete removes a prompt and its runs.
func (s *PromptService) Delete(ctx context.Context, id string) error {
	return s.store.DeletePrompt(ctx, id)
}
