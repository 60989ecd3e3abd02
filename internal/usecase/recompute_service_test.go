package usecase

import (
	"testing"

	"github.com/mrrfc/mrr-fantasy/internal/domain/scoring"
	"github.com/mrrfc/mrr-fantasy/internal/infrastructure/repository/memory"
	"github.com/mrrfc/mrr-fantasy/internal/platform/logging"
)

func TestRecomputeService_RecomputePoints(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	scoringRepo := memory.NewScoringRepository(playerRepo)
	scoringService := NewScoringService(scoringRepo, playerRepo, &seqIDGenerator{prefix: "perf"}, logging.NewNop())

	inputs := []RecordPerformanceInput{
		{PlayerID: "mrr-fwd-04", Week: 1, Goals: 2, Assists: 1},
		{PlayerID: "mrr-fwd-04", Week: 2, Goals: 1},
		{PlayerID: "mrr-def-01", Week: 1, CleanSheets: 1, Tackles: 3},
		{PlayerID: "mrr-gk-03", Week: 1, CleanSheets: 1, Saves: 5},
	}
	for _, input := range inputs {
		if _, err := scoringService.RecordWeekly(t.Context(), input); err != nil {
			t.Fatalf("record weekly failed: %v", err)
		}
	}

	// Knock the cached totals out of sync, then recompute from counters.
	if err := playerRepo.SetTotals(t.Context(), map[string]int{
		"mrr-fwd-04": 0,
		"mrr-def-01": 999,
		"mrr-gk-03":  1,
	}); err != nil {
		t.Fatalf("set totals failed: %v", err)
	}

	service := NewRecomputeService(scoringRepo, playerRepo, logging.NewNop())
	result, err := service.RecomputePoints(t.Context(), RecomputeInput{MaxWorkers: 2})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	if result.PlayerCount != 3 || result.PerformanceCount != 4 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.WorkerCount != 2 {
		t.Fatalf("expected 2 workers, got %d", result.WorkerCount)
	}

	want := map[string]int{
		"mrr-fwd-04": 35,
		"mrr-def-01": 12,
		"mrr-gk-03":  16,
	}
	for id, points := range want {
		p, _, err := playerRepo.GetByID(t.Context(), id)
		if err != nil {
			t.Fatalf("get player %s failed: %v", id, err)
		}
		if p.TotalPoints != points {
			t.Fatalf("player %s: expected %d points, got %d", id, points, p.TotalPoints)
		}
	}
}

func TestRecomputeService_RewritesDriftedWeeklyRows(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	scoringRepo := memory.NewScoringRepository(playerRepo)

	// An empty stat line whose cached row total no longer matches its counters.
	drifted := scoring.WeeklyPerformance{
		ID:          "perf-drifted",
		PlayerID:    "mrr-mid-01",
		Week:        1,
		TotalPoints: 99,
	}
	if _, err := scoringRepo.UpsertWeekly(t.Context(), drifted); err != nil {
		t.Fatalf("seed drifted row failed: %v", err)
	}

	service := NewRecomputeService(scoringRepo, playerRepo, logging.NewNop())
	result, err := service.RecomputePoints(t.Context(), RecomputeInput{MaxWorkers: 1})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if result.ChangedCount != 1 {
		t.Fatalf("expected 1 changed row, got %d", result.ChangedCount)
	}

	perfs, err := scoringRepo.ListByPlayer(t.Context(), "mrr-mid-01")
	if err != nil {
		t.Fatalf("list performances failed: %v", err)
	}
	if len(perfs) != 1 || perfs[0].TotalPoints != 0 {
		t.Fatalf("expected stored row total rewritten to 0, got %+v", perfs)
	}

	// A later inline refresh sums the corrected rows, so the recomputed
	// cumulative total survives the next ingestion.
	scoringService := NewScoringService(scoringRepo, playerRepo, &seqIDGenerator{prefix: "perf"}, logging.NewNop())
	if _, err := scoringService.RecordWeekly(t.Context(), RecordPerformanceInput{PlayerID: "mrr-mid-01", Week: 2, Goals: 1}); err != nil {
		t.Fatalf("record weekly failed: %v", err)
	}

	p, _, err := playerRepo.GetByID(t.Context(), "mrr-mid-01")
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if p.TotalPoints != 8 {
		t.Fatalf("expected cumulative total 8, got %d", p.TotalPoints)
	}
}

func TestRecomputeService_EmptyDataset(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	scoringRepo := memory.NewScoringRepository(playerRepo)

	service := NewRecomputeService(scoringRepo, playerRepo, logging.NewNop())
	result, err := service.RecomputePoints(t.Context(), RecomputeInput{})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if result.PlayerCount != 0 || result.ChangedCount != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestNormalizeRecomputeWorkers(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		taskCount int
		want      int
	}{
		{name: "default when unset", requested: 0, taskCount: 100, want: defaultRecomputeWorkers},
		{name: "capped at maximum", requested: 100, taskCount: 100, want: maxRecomputeWorkers},
		{name: "never more than tasks", requested: 8, taskCount: 3, want: 3},
		{name: "at least one", requested: -5, taskCount: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeRecomputeWorkers(tt.requested, tt.taskCount); got != tt.want {
				t.Fatalf("expected %d workers, got %d", tt.want, got)
			}
		})
	}
}
