package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mrrfc/mrr-fantasy/internal/domain/scoring"
)

type perfKey struct {
	playerID string
	week     int
}

// ScoringRepository stores weekly stat lines keyed by (player, week). It
// writes totals back through the player repository so both stay consistent.
type ScoringRepository struct {
	mu      sync.RWMutex
	perfs   map[perfKey]scoring.WeeklyPerformance
	players *PlayerRepository
}

func NewScoringRepository(players *PlayerRepository) *ScoringRepository {
	return &ScoringRepository{
		perfs:   make(map[perfKey]scoring.WeeklyPerformance),
		players: players,
	}
}

func (r *ScoringRepository) UpsertWeekly(_ context.Context, perf scoring.WeeklyPerformance) (scoring.WeeklyPerformance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := perfKey{playerID: perf.PlayerID, week: perf.Week}
	if existing, ok := r.perfs[key]; ok {
		perf.ID = existing.ID
		perf.CreatedAt = existing.CreatedAt
	}
	r.perfs[key] = perf

	return perf, nil
}

func (r *ScoringRepository) ListByWeek(_ context.Context, week int) ([]scoring.WeeklyPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.WeeklyPerformance, 0)
	for key, perf := range r.perfs {
		if key.week == week {
			out = append(out, perf)
		}
	}
	sortPerformances(out)

	return out, nil
}

func (r *ScoringRepository) ListByPlayer(_ context.Context, playerID string) ([]scoring.WeeklyPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.WeeklyPerformance, 0)
	for key, perf := range r.perfs {
		if key.playerID == playerID {
			out = append(out, perf)
		}
	}
	sortPerformances(out)

	return out, nil
}

func (r *ScoringRepository) ListAll(_ context.Context) ([]scoring.WeeklyPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.WeeklyPerformance, 0, len(r.perfs))
	for _, perf := range r.perfs {
		out = append(out, perf)
	}
	sortPerformances(out)

	return out, nil
}

func (r *ScoringRepository) UpdateWeeklyTotals(_ context.Context, totals map[string]int) error {
	if len(totals) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, perf := range r.perfs {
		total, ok := totals[perf.ID]
		if !ok {
			continue
		}
		perf.TotalPoints = total
		r.perfs[key] = perf
	}

	return nil
}

func (r *ScoringRepository) UpdatePlayerTotals(ctx context.Context, totals map[string]int) error {
	return r.players.SetTotals(ctx, totals)
}

func sortPerformances(perfs []scoring.WeeklyPerformance) {
	sort.Slice(perfs, func(i, j int) bool {
		if perfs[i].PlayerID != perfs[j].PlayerID {
			return perfs[i].PlayerID < perfs[j].PlayerID
		}
		return perfs[i].Week < perfs[j].Week
	})
}
