package scoring

import "context"

// Repository persists weekly stat lines. UpsertWeekly replaces the row keyed
// by (player, week) so re-submitted corrections win over stale data.
// UpdateWeeklyTotals rewrites cached row totals keyed by performance id.
type Repository interface {
	UpsertWeekly(ctx context.Context, perf WeeklyPerformance) (WeeklyPerformance, error)
	ListByWeek(ctx context.Context, week int) ([]WeeklyPerformance, error)
	ListByPlayer(ctx context.Context, playerID string) ([]WeeklyPerformance, error)
	ListAll(ctx context.Context) ([]WeeklyPerformance, error)
	UpdateWeeklyTotals(ctx context.Context, totals map[string]int) error
	UpdatePlayerTotals(ctx context.Context, totals map[string]int) error
}
