package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mrrfc/mrr-fantasy/internal/domain/league"
	qb "github.com/mrrfc/mrr-fantasy/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

var leagueSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"invite_code",
	"owner_id",
	"created_at",
	"deleted_at",
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	const insertQuery = `
INSERT INTO leagues (public_id, name, invite_code, owner_id)
VALUES (:public_id, :name, :invite_code, :owner_id)`
	insertSQL, insertArgs, err := sqlx.Named(insertQuery, map[string]any{
		"public_id":   l.ID,
		"name":        l.Name,
		"invite_code": l.InviteCode,
		"owner_id":    l.OwnerID,
	})
	if err != nil {
		return fmt.Errorf("bind insert league query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)
	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", leagueID))
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, code string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("invite_code", code))
}

func (r *LeagueRepository) AddMember(ctx context.Context, m league.Member) error {
	const insertQuery = `
INSERT INTO league_members (league_public_id, user_id, joined_at)
VALUES ($1, $2, $3)
ON CONFLICT (league_public_id, user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insertQuery, m.LeagueID, m.UserID, m.JoinedAt); err != nil {
		return fmt.Errorf("insert league member: %w", err)
	}

	return nil
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	const existsQuery = `
SELECT EXISTS (
    SELECT 1
    FROM league_members
    WHERE league_public_id = $1
      AND user_id = $2
)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, existsQuery, leagueID, userID); err != nil {
		return false, fmt.Errorf("check league membership: %w", err)
	}

	return exists, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	const membersQuery = `
SELECT id, league_public_id, user_id, joined_at
FROM league_members
WHERE league_public_id = $1
ORDER BY joined_at, id`

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, membersQuery, leagueID); err != nil {
		return nil, fmt.Errorf("select league members: %w", err)
	}

	out := make([]league.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Member{
			LeagueID: row.LeaguePublicID,
			UserID:   row.UserID,
			JoinedAt: row.JoinedAt,
		})
	}

	return out, nil
}

func (r *LeagueRepository) getOne(ctx context.Context, match qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").
		Where(match, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build select league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("select league: %w", err)
	}

	return row.toDomain(), true, nil
}
