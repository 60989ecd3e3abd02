package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/scoring"
	"github.com/mrrfc/mrr-fantasy/internal/platform/logging"
)

const (
	defaultRecomputeWorkers = 4
	maxRecomputeWorkers     = 32
)

// RecomputeInput tunes a full points recompute run.
type RecomputeInput struct {
	MaxWorkers int
}

// RecomputeResult summarizes a recompute run.
type RecomputeResult struct {
	PlayerCount      int
	PerformanceCount int
	WorkerCount      int
	ChangedCount     int
	DurationMs       int64
}

// RecomputeService rebuilds every weekly score and cumulative player total
// from the raw stat counters. Run after scoring corrections or backfills.
type RecomputeService struct {
	scoringRepo scoring.Repository
	playerRepo  player.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewRecomputeService(
	scoringRepo scoring.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RecomputeService{
		scoringRepo: scoringRepo,
		playerRepo:  playerRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *RecomputeService) RecomputePoints(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RecomputeService.RecomputePoints")
	defer span.End()

	start := s.now()

	perfs, err := s.scoringRepo.ListAll(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list performances: %w", err)
	}

	byPlayer := make(map[string][]scoring.WeeklyPerformance)
	for _, perf := range perfs {
		byPlayer[perf.PlayerID] = append(byPlayer[perf.PlayerID], perf)
	}

	playerIDs := make([]string, 0, len(byPlayer))
	for id := range byPlayer {
		playerIDs = append(playerIDs, id)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("get players: %w", err)
	}
	positionByID := make(map[string]player.Position, len(players))
	for _, p := range players {
		positionByID[p.ID] = p.Position
	}

	workerCount := normalizeRecomputeWorkers(input.MaxWorkers, len(playerIDs))
	result := RecomputeResult{
		PlayerCount:      len(playerIDs),
		PerformanceCount: len(perfs),
		WorkerCount:      workerCount,
	}
	if len(playerIDs) == 0 {
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	totals := make(map[string]int, len(playerIDs))
	correctedWeekly := make(map[string]int)
	var totalsMu sync.Mutex

	var workers sync.WaitGroup
	for _, playerID := range playerIDs {
		playerID := playerID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			pos, ok := positionByID[playerID]
			if !ok {
				// Stat lines for a player no longer in the catalog
				// score zero.
				totalsMu.Lock()
				totals[playerID] = 0
				totalsMu.Unlock()
				return
			}

			total := 0
			corrected := make(map[string]int)
			for _, perf := range byPlayer[playerID] {
				points := scoring.Score(pos, perf)
				if points != perf.TotalPoints {
					corrected[perf.ID] = points
				}
				total += points
			}

			totalsMu.Lock()
			totals[playerID] = total
			for id, points := range corrected {
				correctedWeekly[id] = points
			}
			totalsMu.Unlock()
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit recompute task: %w", err)
		}
	}

	workers.Wait()

	// Drifted row totals are written back first so later inline refreshes
	// sum corrected rows, not stale ones.
	if err := s.scoringRepo.UpdateWeeklyTotals(ctx, correctedWeekly); err != nil {
		return RecomputeResult{}, fmt.Errorf("update weekly totals: %w", err)
	}

	if err := s.scoringRepo.UpdatePlayerTotals(ctx, totals); err != nil {
		return RecomputeResult{}, fmt.Errorf("update player totals: %w", err)
	}

	result.ChangedCount = len(correctedWeekly)
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "points recompute finished",
		"player_count", result.PlayerCount,
		"performance_count", result.PerformanceCount,
		"changed_count", result.ChangedCount,
		"duration_ms", result.DurationMs,
	)

	return result, nil
}

func normalizeRecomputeWorkers(requested, taskCount int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultRecomputeWorkers
	}
	if workers > maxRecomputeWorkers {
		workers = maxRecomputeWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	if workers < 1 {
		workers = 1
	}

	return workers
}
