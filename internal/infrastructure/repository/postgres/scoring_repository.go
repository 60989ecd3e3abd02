package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mrrfc/mrr-fantasy/internal/domain/scoring"
	qb "github.com/mrrfc/mrr-fantasy/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

var weeklyPerformanceSelectColumns = []string{
	"id",
	"public_id",
	"player_public_id",
	"week",
	"goals",
	"assists",
	"clean_sheets",
	"saves",
	"tackles",
	"total_points",
	"created_at",
	"updated_at",
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) UpsertWeekly(ctx context.Context, perf scoring.WeeklyPerformance) (scoring.WeeklyPerformance, error) {
	const upsertQuery = `
INSERT INTO weekly_performances (
    public_id,
    player_public_id,
    week,
    goals,
    assists,
    clean_sheets,
    saves,
    tackles,
    total_points
) VALUES (:public_id, :player_public_id, :week, :goals, :assists, :clean_sheets, :saves, :tackles, :total_points)
ON CONFLICT (player_public_id, week)
DO UPDATE SET
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    clean_sheets = EXCLUDED.clean_sheets,
    saves = EXCLUDED.saves,
    tackles = EXCLUDED.tackles,
    total_points = EXCLUDED.total_points,
    updated_at = NOW()
RETURNING public_id, created_at, updated_at`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertQuery, map[string]any{
		"public_id":        perf.ID,
		"player_public_id": perf.PlayerID,
		"week":             perf.Week,
		"goals":            perf.Goals,
		"assists":          perf.Assists,
		"clean_sheets":     perf.CleanSheets,
		"saves":            perf.Saves,
		"tackles":          perf.Tackles,
		"total_points":     perf.TotalPoints,
	})
	if err != nil {
		return scoring.WeeklyPerformance{}, fmt.Errorf("bind upsert weekly performance query: %w", err)
	}
	upsertSQL = r.db.Rebind(upsertSQL)

	var (
		publicID  string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := r.db.QueryRowxContext(ctx, upsertSQL, upsertArgs...).Scan(&publicID, &createdAt, &updatedAt); err != nil {
		return scoring.WeeklyPerformance{}, fmt.Errorf("upsert weekly performance: %w", err)
	}

	perf.ID = publicID
	perf.CreatedAt = createdAt
	perf.UpdatedAt = updatedAt

	return perf, nil
}

func (r *ScoringRepository) ListByWeek(ctx context.Context, week int) ([]scoring.WeeklyPerformance, error) {
	return r.list(ctx, qb.Eq("week", week))
}

func (r *ScoringRepository) ListByPlayer(ctx context.Context, playerID string) ([]scoring.WeeklyPerformance, error) {
	return r.list(ctx, qb.Eq("player_public_id", playerID))
}

func (r *ScoringRepository) ListAll(ctx context.Context) ([]scoring.WeeklyPerformance, error) {
	return r.list(ctx)
}

func (r *ScoringRepository) UpdateWeeklyTotals(ctx context.Context, totals map[string]int) error {
	if len(totals) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for weekly totals: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
UPDATE weekly_performances
SET total_points = $1,
    updated_at = NOW()
WHERE public_id = $2`

	for perfID, total := range totals {
		if _, err := tx.ExecContext(ctx, updateQuery, total, perfID); err != nil {
			return fmt.Errorf("update total for performance=%s: %w", perfID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit weekly totals tx: %w", err)
	}

	return nil
}

func (r *ScoringRepository) UpdatePlayerTotals(ctx context.Context, totals map[string]int) error {
	if len(totals) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player totals: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
UPDATE players
SET total_points = $1,
    updated_at = NOW()
WHERE public_id = $2
  AND deleted_at IS NULL`

	for playerID, total := range totals {
		if _, err := tx.ExecContext(ctx, updateQuery, total, playerID); err != nil {
			return fmt.Errorf("update total for player=%s: %w", playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player totals tx: %w", err)
	}

	return nil
}

func (r *ScoringRepository) list(ctx context.Context, conditions ...qb.Condition) ([]scoring.WeeklyPerformance, error) {
	query, args, err := qb.Select(weeklyPerformanceSelectColumns...).From("weekly_performances").
		Where(conditions...).
		OrderBy("player_public_id", "week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly performances query: %w", err)
	}

	var rows []weeklyPerformanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly performances: %w", err)
	}

	out := make([]scoring.WeeklyPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
