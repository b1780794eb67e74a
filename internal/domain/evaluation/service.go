package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/repository"
)

// Service handles evaluation business logic.
type Service struct {
	evaluations Repository
	stats       ReviewStats
	users       UserDirectory
	logger      *slog.Logger
}

// NewService creates a new evaluation service.
func NewService(evaluations Repository, stats ReviewStats, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		evaluations: evaluations,
		stats:       stats,
		users:       users,
		logger:      logger,
	}
}

// CreateRequest describes an evaluation creation request.
type CreateRequest struct {
	TechID              string
	PeriodStart         time.Time
	PeriodEnd           time.Time
	Strengths           string
	AreasForImprovement string
	AdditionalComments  string
	OverallRating       int
}

// Create records an evaluation. The lifecycle metrics for the period are
// computed at creation time and stored with the record.
func (s *Service) Create(ctx context.Context, evaluator *user.User, req CreateRequest) (*Evaluation, error) {
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, ErrInvalidPeriod
	}
	if req.OverallRating < 1 || req.OverallRating > 5 {
		return nil, ErrInvalidRating
	}

	tech, err := s.resolveTech(ctx, req.TechID)
	if err != nil {
		return nil, err
	}

	metrics, err := s.metricsFor(ctx, tech.Username, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	score := metrics.QualityScore
	ev := &Evaluation{
		ID:                  uuid.NewString(),
		Tech:                tech.Username,
		Evaluator:           evaluator.Username,
		PeriodStart:         req.PeriodStart,
		PeriodEnd:           req.PeriodEnd,
		CasesReviewed:       metrics.CasesReviewed,
		QualityScore:        &score,
		PingCount:           metrics.PingCount,
		KudosCount:          metrics.KudosCount,
		Strengths:           req.Strengths,
		AreasForImprovement: req.AreasForImprovement,
		AdditionalComments:  req.AdditionalComments,
		OverallRating:       req.OverallRating,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.evaluations.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("creating evaluation: %w", err)
	}
	return ev, nil
}

// Get returns one evaluation by ID.
func (s *Service) Get(ctx context.Context, id string) (*Evaluation, error) {
	ev, err := s.evaluations.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("loading evaluation: %w", err)
	}
	return ev, nil
}

// UpdateRequest carries the editable evaluation fields. Nil fields are left
// unchanged; the metrics computed at creation are immutable.
type UpdateRequest struct {
	Strengths           *string
	AreasForImprovement *string
	AdditionalComments  *string
	OverallRating       *int
}

// Update edits an evaluation's narrative fields and rating.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Evaluation, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Strengths != nil {
		ev.Strengths = *req.Strengths
	}
	if req.AreasForImprovement != nil {
		ev.AreasForImprovement = *req.AreasForImprovement
	}
	if req.AdditionalComments != nil {
		ev.AdditionalComments = *req.AdditionalComments
	}
	if req.OverallRating != nil {
		if *req.OverallRating < 1 || *req.OverallRating > 5 {
			return nil, ErrInvalidRating
		}
		ev.OverallRating = *req.OverallRating
	}
	ev.UpdatedAt = time.Now()

	if err := s.evaluations.Update(ctx, ev); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("updating evaluation: %w", err)
	}
	return ev, nil
}

// Delete removes an evaluation.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.evaluations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEvaluationNotFound
		}
		return fmt.Errorf("deleting evaluation: %w", err)
	}
	return nil
}

// List returns all evaluations, newest first.
func (s *Service) List(ctx context.Context) ([]Evaluation, error) {
	return s.evaluations.List(ctx)
}

// ListForTech returns evaluations for one technician.
func (s *Service) ListForTech(ctx context.Context, techID string) ([]Evaluation, error) {
	tech, err := s.resolveTech(ctx, techID)
	if err != nil {
		return nil, err
	}
	return s.evaluations.ListForTech(ctx, tech.Username)
}

// Metrics computes lifecycle-derived numbers for a tech over a period.
func (s *Service) Metrics(ctx context.Context, techID string, start, end time.Time) (*Metrics, error) {
	if end.Before(start) {
		return nil, ErrInvalidPeriod
	}
	tech, err := s.resolveTech(ctx, techID)
	if err != nil {
		return nil, err
	}
	return s.metricsFor(ctx, tech.Username, start, end)
}

func (s *Service) metricsFor(ctx context.Context, tech string, start, end time.Time) (*Metrics, error) {
	total, err := s.stats.CountReviewedForTech(ctx, tech, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("counting reviews: %w", err)
	}

	pings, err := s.stats.CountReviewedForTech(ctx, tech, start, end, []claim.ReviewStatus{
		claim.StatusPingedLow, claim.StatusPingedMed, claim.StatusPingedHigh,
		claim.StatusAcknowledged, claim.StatusResolved,
	})
	if err != nil {
		return nil, fmt.Errorf("counting pings: %w", err)
	}

	kudos, err := s.stats.CountReviewedForTech(ctx, tech, start, end, []claim.ReviewStatus{claim.StatusKudos})
	if err != nil {
		return nil, fmt.Errorf("counting kudos: %w", err)
	}

	score := 0.0
	if total > 0 {
		score = math.Round(float64(total-pings)/float64(total)*10000) / 100
	}

	return &Metrics{
		Tech:          tech,
		PeriodStart:   start,
		PeriodEnd:     end,
		CasesReviewed: total,
		PositiveCount: total - pings,
		PingCount:     pings,
		KudosCount:    kudos,
		QualityScore:  score,
	}, nil
}

func (s *Service) resolveTech(ctx context.Context, techID string) (*user.User, error) {
	tech, err := s.users.Get(ctx, techID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrTechNotFound
		}
		return nil, fmt.Errorf("resolving technician: %w", err)
	}
	return tech, nil
}
