// Package caselookup answers "where is this case" questions across the three
// claim stages. A case number lives in exactly one of active/complete at a
// time; reviewed rows accumulate and the most recent one is the current one.
package caselookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/repository"
)

// ErrCaseNotFound indicates the case appears in no stage.
var ErrCaseNotFound = errors.New("case not found in any stage")

// Service handles case lookup reads. It never mutates.
type Service struct {
	active   claim.ActiveClaimRepository
	complete claim.CompleteClaimRepository
	reviewed claim.ReviewedClaimRepository
	logger   *slog.Logger
}

// NewService creates a new lookup service.
func NewService(
	active claim.ActiveClaimRepository,
	complete claim.CompleteClaimRepository,
	reviewed claim.ReviewedClaimRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		active:   active,
		complete: complete,
		reviewed: reviewed,
		logger:   logger,
	}
}

// Search probes Active, then Complete, then Reviewed (most recent first) and
// returns the first match.
func (s *Service) Search(ctx context.Context, casenum string) (*SearchResult, error) {
	result := &SearchResult{CaseNum: casenum}

	active, err := s.active.GetByCaseNum(ctx, casenum)
	if err == nil {
		result.Found = true
		result.CurrentStatus = StageActive
		result.Data = active
		return result, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("searching active claims: %w", err)
	}

	complete, err := s.complete.GetByCaseNum(ctx, casenum)
	if err == nil {
		result.Found = true
		result.CurrentStatus = StageComplete
		result.Data = complete
		return result, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("searching complete claims: %w", err)
	}

	reviews, err := s.reviewed.ListByCaseNum(ctx, casenum, true)
	if err != nil {
		return nil, fmt.Errorf("searching reviewed claims: %w", err)
	}
	if len(reviews) > 0 {
		result.Found = true
		result.CurrentStatus = StageReviewed
		result.Data = &reviews[0]
		result.TotalReviews = len(reviews)
		return result, nil
	}

	return nil, ErrCaseNotFound
}

// Status returns a quick status check for a case.
func (s *Service) Status(ctx context.Context, casenum string) (*StatusResult, error) {
	active, err := s.active.GetByCaseNum(ctx, casenum)
	if err == nil {
		return &StatusResult{
			CaseNum: casenum,
			Status:  StageActive,
			Message: fmt.Sprintf("Case is currently active, claimed by %s", active.User),
		}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking active claims: %w", err)
	}

	complete, err := s.complete.GetByCaseNum(ctx, casenum)
	if err == nil {
		msg := "Case is completed, awaiting review"
		if complete.Lead != nil {
			msg = fmt.Sprintf("%s, being reviewed by %s", msg, *complete.Lead)
		}
		return &StatusResult{
			CaseNum: casenum,
			Status:  StageComplete,
			Message: msg,
		}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking complete claims: %w", err)
	}

	reviews, err := s.reviewed.ListByCaseNum(ctx, casenum, true)
	if err != nil {
		return nil, fmt.Errorf("checking reviewed claims: %w", err)
	}
	if len(reviews) > 0 {
		latest := reviews[0]
		return &StatusResult{
			CaseNum:      casenum,
			Status:       StageReviewed,
			ReviewStatus: string(latest.Status),
			Message:      fmt.Sprintf("Case has been reviewed with status: %s", latest.Status),
		}, nil
	}

	return nil, ErrCaseNotFound
}

// History returns the full ordered timeline of a case across all stages.
// Reviewed entries come back oldest to newest.
func (s *Service) History(ctx context.Context, casenum string) (*History, error) {
	history := &History{CaseNum: casenum, Timeline: []TimelineEntry{}}

	active, err := s.active.GetByCaseNum(ctx, casenum)
	if err == nil {
		history.Timeline = append(history.Timeline, TimelineEntry{
			Stage:     StageActive,
			Status:    "current",
			User:      active.User,
			ClaimTime: active.ClaimTime,
		})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading active claim: %w", err)
	}

	complete, err := s.complete.GetByCaseNum(ctx, casenum)
	if err == nil {
		entry := TimelineEntry{
			Stage:        StageComplete,
			Status:       "current",
			User:         complete.User,
			ClaimTime:    complete.ClaimTime,
			CompleteTime: &complete.CompleteTime,
		}
		if complete.Lead != nil {
			entry.Lead = *complete.Lead
		}
		history.Timeline = append(history.Timeline, entry)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading complete claim: %w", err)
	}

	reviews, err := s.reviewed.ListByCaseNum(ctx, casenum, false)
	if err != nil {
		return nil, fmt.Errorf("loading reviewed claims: %w", err)
	}
	for i := range reviews {
		rev := reviews[i]
		history.Timeline = append(history.Timeline, TimelineEntry{
			Stage:        StageReviewed,
			Status:       string(rev.Status),
			User:         rev.Tech,
			Lead:         rev.Lead,
			ClaimTime:    rev.ClaimTime,
			CompleteTime: &rev.CompleteTime,
			ReviewTime:   &rev.ReviewTime,
			Comment:      rev.Comment,
		})
	}

	if len(history.Timeline) == 0 {
		return nil, ErrCaseNotFound
	}
	return history, nil
}
