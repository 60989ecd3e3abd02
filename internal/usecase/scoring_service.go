package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/scoring"
	idgen "github.com/mrrfc/mrr-fantasy/internal/platform/id"
	"github.com/mrrfc/mrr-fantasy/internal/platform/logging"
)

// RecordPerformanceInput is one player's stat line for one week, as posted by
// the internal ingestion endpoint.
type RecordPerformanceInput struct {
	PlayerID    string
	Week        int
	Goals       int
	Assists     int
	CleanSheets int
	Saves       int
	Tackles     int
}

// JobPublisher schedules deferred background work, typically through QStash.
type JobPublisher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type ScoringService struct {
	scoringRepo scoring.Repository
	playerRepo  player.Repository
	idGen       idgen.Generator
	publisher   JobPublisher
	logger      *logging.Logger
	now         func() time.Time
}

func NewScoringService(
	scoringRepo scoring.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		scoringRepo: scoringRepo,
		playerRepo:  playerRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// SetJobPublisher turns on deferred full recomputes after ingestion. Without
// a publisher only the affected player's total is refreshed inline.
func (s *ScoringService) SetJobPublisher(publisher JobPublisher) {
	s.publisher = publisher
}

// RecordWeekly upserts a stat line, computes its points from the player's
// primary position and refreshes that player's cumulative total. Posting the
// same (player, week) again replaces the earlier line.
func (s *ScoringService) RecordWeekly(ctx context.Context, input RecordPerformanceInput) (scoring.WeeklyPerformance, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.RecordWeekly")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)

	perf := scoring.WeeklyPerformance{
		PlayerID:    input.PlayerID,
		Week:        input.Week,
		Goals:       input.Goals,
		Assists:     input.Assists,
		CleanSheets: input.CleanSheets,
		Saves:       input.Saves,
		Tackles:     input.Tackles,
	}
	if err := perf.Validate(); err != nil {
		return scoring.WeeklyPerformance{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return scoring.WeeklyPerformance{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return scoring.WeeklyPerformance{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}

	perf.ID, err = s.idGen.NewID()
	if err != nil {
		return scoring.WeeklyPerformance{}, fmt.Errorf("generate performance id: %w", err)
	}

	now := s.now().UTC()
	perf.TotalPoints = scoring.Score(p.Position, perf)
	perf.CreatedAt = now
	perf.UpdatedAt = now

	stored, err := s.scoringRepo.UpsertWeekly(ctx, perf)
	if err != nil {
		return scoring.WeeklyPerformance{}, fmt.Errorf("upsert weekly performance: %w", err)
	}

	if err := s.refreshPlayerTotal(ctx, input.PlayerID); err != nil {
		return scoring.WeeklyPerformance{}, err
	}

	s.logger.InfoContext(ctx, "weekly performance recorded",
		"player_id", input.PlayerID,
		"week", input.Week,
		"points", stored.TotalPoints,
	)

	if s.publisher != nil {
		dedupID := fmt.Sprintf("recompute-week-%d", input.Week)
		if err := s.publisher.Enqueue(ctx, "/v1/internal/jobs/recompute-points", nil, 30*time.Second, dedupID); err != nil {
			// Best effort: the inline total refresh already ran.
			s.logger.WarnContext(ctx, "enqueue recompute job failed", "week", input.Week, "error", err)
		}
	}

	return stored, nil
}

// ListWeek returns every stat line recorded for a game week.
func (s *ScoringService) ListWeek(ctx context.Context, week int) ([]scoring.WeeklyPerformance, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.ListWeek")
	defer span.End()

	if week < 1 {
		return nil, fmt.Errorf("%w: week must be positive, got %d", ErrInvalidInput, week)
	}

	perfs, err := s.scoringRepo.ListByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("list week performances: %w", err)
	}

	return perfs, nil
}

// ListPlayerHistory returns a player's stat lines across all weeks.
func (s *ScoringService) ListPlayerHistory(ctx context.Context, playerID string) ([]scoring.WeeklyPerformance, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.ListPlayerHistory")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	perfs, err := s.scoringRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list player performances: %w", err)
	}

	return perfs, nil
}

func (s *ScoringService) refreshPlayerTotal(ctx context.Context, playerID string) error {
	perfs, err := s.scoringRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("list player performances: %w", err)
	}

	total := 0
	for _, perf := range perfs {
		total += perf.TotalPoints
	}

	if err := s.scoringRepo.UpdatePlayerTotals(ctx, map[string]int{playerID: total}); err != nil {
		return fmt.Errorf("update player total: %w", err)
	}

	return nil
}
