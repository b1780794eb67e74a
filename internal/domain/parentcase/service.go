package parentcase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/caseflow/internal/repository"
)

// Service handles parent case business logic.
type Service struct {
	cases  Repository
	logger *slog.Logger
}

// NewService creates a new parent case service.
func NewService(cases Repository, logger *slog.Logger) *Service {
	return &Service{cases: cases, logger: logger}
}

// CreateRequest describes a parent case creation request.
type CreateRequest struct {
	CaseNumber  string
	Description string
	Solution    *string
}

// UpdateRequest describes a parent case update request. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Description *string
	Solution    *string
}

// Create registers a new parent case, active by default.
func (s *Service) Create(ctx context.Context, createdBy string, req CreateRequest) (*ParentCase, error) {
	if req.CaseNumber == "" || req.Description == "" {
		return nil, ErrInvalidInput
	}

	pc := &ParentCase{
		ID:          uuid.NewString(),
		CaseNumber:  req.CaseNumber,
		Description: req.Description,
		Solution:    req.Solution,
		Active:      true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}

	if err := s.cases.Create(ctx, pc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCaseExists
		}
		return nil, fmt.Errorf("creating parent case: %w", err)
	}
	return pc, nil
}

// Update modifies a parent case's description or solution.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*ParentCase, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Solution != nil {
		current.Solution = req.Solution
	}

	if err := s.cases.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("updating parent case: %w", err)
	}
	return current, nil
}

// Toggle flips a parent case between active and inactive.
func (s *Service) Toggle(ctx context.Context, id string) (*ParentCase, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Active = !current.Active
	if err := s.cases.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("toggling parent case: %w", err)
	}
	return current, nil
}

// ListActive returns all active parent cases.
func (s *Service) ListActive(ctx context.Context) ([]ParentCase, error) {
	return s.cases.ListActive(ctx)
}

func (s *Service) get(ctx context.Context, id string) (*ParentCase, error) {
	current, err := s.cases.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("loading parent case: %w", err)
	}
	return current, nil
}
