package claim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/repository"
)

// Acknowledge moves a pinged claim to acknowledged. Only the tech named on
// the claim may acknowledge, regardless of role.
func (s *Service) Acknowledge(ctx context.Context, actor *user.User, id, comment string) (*ReviewedClaim, error) {
	current, err := s.reviewed.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("loading reviewed claim: %w", err)
	}

	if !current.Status.IsPing() {
		return nil, ErrNotPinged
	}
	if !current.IsOwnedBy(actor.Username) {
		return nil, ErrNotOwner
	}

	if err := s.reviewed.UpdateStatus(ctx, id, StatusAcknowledged, &comment); err != nil {
		return nil, fmt.Errorf("acknowledging ping: %w", err)
	}

	current.Status = StatusAcknowledged
	current.AcknowledgeComment = comment
	return current, nil
}

// Resolve closes an acknowledged ping. Lead or above only; the role gate sits
// at the transport layer, the state check here.
func (s *Service) Resolve(ctx context.Context, id string) (*ReviewedClaim, error) {
	current, err := s.reviewed.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("loading reviewed claim: %w", err)
	}

	if current.Status != StatusAcknowledged {
		return nil, ErrNotAcknowledged
	}

	if err := s.reviewed.UpdateStatus(ctx, id, StatusResolved, nil); err != nil {
		return nil, fmt.Errorf("resolving ping: %w", err)
	}

	current.Status = StatusResolved
	return current, nil
}

// CreatePing creates a reviewed claim directly in a ping-severity state,
// bypassing the normal Complete->Review path. Used by leads for coaching on
// cases outside the normal flow; both carried timestamps are creation time
// since no real prior claim exists.
func (s *Service) CreatePing(ctx context.Context, actor *user.User, casenum, techID string, severity ReviewStatus, comment string) (*ReviewedClaim, error) {
	if err := ValidateCaseNum(casenum); err != nil {
		return nil, err
	}
	if !severity.IsPing() {
		return nil, ErrInvalidStatus
	}
	if comment == "" {
		return nil, ErrMissingComment
	}

	tech, err := s.users.Get(ctx, techID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrTechNotFound
		}
		return nil, fmt.Errorf("resolving technician: %w", err)
	}

	now := time.Now()
	rec := &ReviewedClaim{
		ID:           uuid.NewString(),
		CaseNum:      casenum,
		Tech:         tech.Username,
		Lead:         actor.Username,
		ClaimTime:    now,
		CompleteTime: now,
		ReviewTime:   now,
		Status:       severity,
		Comment:      comment,
	}

	if err := s.reviewed.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating manual ping: %w", err)
	}
	return rec, nil
}

// PingsForUser returns all ping-cycle claims (pinged, acknowledged or
// resolved) for a tech. A tech may fetch their own; Lead and above may fetch
// anyone's.
func (s *Service) PingsForUser(ctx context.Context, actor *user.User, techID string) ([]ReviewedClaim, error) {
	tech, err := s.users.Get(ctx, techID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrTechNotFound
		}
		return nil, fmt.Errorf("resolving technician: %w", err)
	}

	if actor.ID != tech.ID && !actor.AtLeast(user.RoleLead) {
		return nil, ErrNotOwner
	}

	statuses := append([]ReviewStatus{}, PingStatuses...)
	statuses = append(statuses, StatusAcknowledged, StatusResolved)
	return s.reviewed.ListByTech(ctx, tech.Username, statuses)
}
