package claim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/notify"
	"github.com/mwhitford/caseflow/internal/repository"
)

// Service handles the claim lifecycle: Unclaimed -> Active -> Complete ->
// Reviewed, plus the ping sub-workflow on reviewed claims.
type Service struct {
	active    ActiveClaimRepository
	complete  CompleteClaimRepository
	reviewed  ReviewedClaimRepository
	users     UserDirectory
	publisher notify.Publisher
	logger    *slog.Logger
}

// NewService creates a new claim service.
func NewService(
	active ActiveClaimRepository,
	complete CompleteClaimRepository,
	reviewed ReviewedClaimRepository,
	users UserDirectory,
	publisher notify.Publisher,
	logger *slog.Logger,
) *Service {
	if publisher == nil {
		publisher = notify.Noop{}
	}
	return &Service{
		active:    active,
		complete:  complete,
		reviewed:  reviewed,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Claim creates an active claim for an unclaimed case. The store's unique
// index on the case number decides races: exactly one of two concurrent
// claims succeeds, the other gets ErrCaseAlreadyClaimed.
func (s *Service) Claim(ctx context.Context, actor *user.User, casenum string) (*ActiveClaim, error) {
	if err := ValidateCaseNum(casenum); err != nil {
		return nil, err
	}

	c := &ActiveClaim{
		ID:        uuid.NewString(),
		CaseNum:   casenum,
		User:      actor.Username,
		ClaimTime: time.Now(),
	}

	if err := s.active.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCaseAlreadyClaimed
		}
		return nil, fmt.Errorf("creating active claim: %w", err)
	}

	s.emit(ctx, notify.EventClaim, casenum, actor.Username)
	return c, nil
}

// Complete converts an active claim into a complete claim. The claim
// timestamp carries over; completion time is server time.
func (s *Service) Complete(ctx context.Context, actor *user.User, casenum string) (*CompleteClaim, error) {
	current, err := s.active.GetByCaseNum(ctx, casenum)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("loading active claim: %w", err)
	}

	done := &CompleteClaim{
		ID:           uuid.NewString(),
		CaseNum:      current.CaseNum,
		User:         current.User,
		ClaimTime:    current.ClaimTime,
		CompleteTime: time.Now(),
	}

	if err := s.complete.Create(ctx, done); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCaseAlreadyComplete
		}
		return nil, fmt.Errorf("creating complete claim: %w", err)
	}
	if err := s.active.Delete(ctx, current.ID); err != nil {
		return nil, fmt.Errorf("deleting active claim: %w", err)
	}

	s.emit(ctx, notify.EventComplete, casenum, actor.Username)
	return done, nil
}

// Unclaim deletes an active claim with no successor. The owning tech may
// unclaim their own case; anyone at Lead level or above may unclaim any case.
func (s *Service) Unclaim(ctx context.Context, actor *user.User, casenum string) error {
	current, err := s.active.GetByCaseNum(ctx, casenum)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClaimNotFound
		}
		return fmt.Errorf("loading active claim: %w", err)
	}

	if current.User != actor.Username && !actor.AtLeast(user.RoleLead) {
		return ErrNotOwner
	}

	if err := s.active.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("deleting active claim: %w", err)
	}

	s.emit(ctx, notify.EventUnclaimed, casenum, actor.Username)
	return nil
}

// ListActive returns all active claims.
func (s *Service) ListActive(ctx context.Context) ([]ActiveClaim, error) {
	return s.active.List(ctx)
}

// BeginReview assigns the acting lead to a complete claim so other leads can
// see the case is taken. Reassignment is last-writer-wins.
func (s *Service) BeginReview(ctx context.Context, actor *user.User, id string) (*CompleteClaim, error) {
	current, err := s.complete.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("loading complete claim: %w", err)
	}

	if err := s.complete.SetLead(ctx, id, actor.Username); err != nil {
		return nil, fmt.Errorf("assigning lead: %w", err)
	}
	lead := actor.Username
	current.Lead = &lead

	s.emit(ctx, notify.EventBeginReview, current.CaseNum, actor.Username)
	return current, nil
}

// Review finalizes a complete claim into a reviewed claim with the supplied
// status and comment, then deletes the complete claim.
func (s *Service) Review(ctx context.Context, actor *user.User, id string, status ReviewStatus, comment string) (*ReviewedClaim, error) {
	if !status.IsReviewOutcome() {
		return nil, ErrInvalidStatus
	}

	current, err := s.complete.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("loading complete claim: %w", err)
	}

	rec := &ReviewedClaim{
		ID:           uuid.NewString(),
		CaseNum:      current.CaseNum,
		Tech:         current.User,
		Lead:         actor.Username,
		ClaimTime:    current.ClaimTime,
		CompleteTime: current.CompleteTime,
		ReviewTime:   time.Now(),
		Status:       status,
		Comment:      comment,
	}

	if err := s.reviewed.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating reviewed claim: %w", err)
	}
	if err := s.complete.Delete(ctx, current.ID); err != nil {
		return nil, fmt.Errorf("deleting complete claim: %w", err)
	}

	s.emit(ctx, notify.EventReview, rec.CaseNum, actor.Username)
	return rec, nil
}

// ListComplete returns all complete claims.
func (s *Service) ListComplete(ctx context.Context) ([]CompleteClaim, error) {
	return s.complete.List(ctx)
}

// ListReviewed returns all reviewed claims.
func (s *Service) ListReviewed(ctx context.Context) ([]ReviewedClaim, error) {
	return s.reviewed.List(ctx)
}

// emit publishes a lifecycle event. The mutation already committed, so a
// publish failure is logged and swallowed.
func (s *Service) emit(ctx context.Context, event, casenum, username string) {
	err := s.publisher.Publish(ctx, notify.Event{
		Event:   event,
		CaseNum: casenum,
		User:    username,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("notification publish failed", "event", event, "casenum", casenum, "error", err)
	}
}
