package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
)

type RosterRepository struct {
	db *sqlx.DB
}

// The roster head and its slot rows come back from one statement so a read
// never mixes an old captain with a newer player set.
const rosterJoinQuery = `
SELECT
    r.public_id,
    r.user_id,
    r.name,
    r.captain_public_id,
    r.created_at,
    r.updated_at,
    rp.player_public_id,
    rp.slot,
    rp.assigned_position,
    rp.slot_order
FROM rosters r
LEFT JOIN roster_players rp ON rp.roster_public_id = r.public_id
WHERE r.deleted_at IS NULL`

const rosterJoinOrder = `
ORDER BY r.id, rp.slot, rp.slot_order`

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Create(ctx context.Context, ros roster.Roster, sel roster.Selection) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for roster create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertRosterQuery = `
INSERT INTO rosters (public_id, user_id, name, captain_public_id)
VALUES (:public_id, :user_id, :name, :captain_public_id)`
	insertSQL, insertArgs, err := sqlx.Named(insertRosterQuery, map[string]any{
		"public_id":         ros.ID,
		"user_id":           ros.UserID,
		"name":              ros.Name,
		"captain_public_id": sel.CaptainID,
	})
	if err != nil {
		return fmt.Errorf("bind insert roster query: %w", err)
	}
	insertSQL = tx.Rebind(insertSQL)
	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert roster: %w", err)
	}

	if err := insertSelection(ctx, tx, ros.ID, sel); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster create tx: %w", err)
	}

	return nil
}

func (r *RosterRepository) GetByID(ctx context.Context, rosterID string) (roster.Roster, bool, error) {
	return r.getOne(ctx, "r.public_id", rosterID)
}

func (r *RosterRepository) GetByUser(ctx context.Context, userID string) (roster.Roster, bool, error) {
	return r.getOne(ctx, "r.user_id", userID)
}

func (r *RosterRepository) GetByUsers(ctx context.Context, userIDs []string) ([]roster.Roster, error) {
	if len(userIDs) == 0 {
		return []roster.Roster{}, nil
	}

	query, args, err := sqlx.In(rosterJoinQuery+"\n  AND r.user_id IN (?)"+rosterJoinOrder, userIDs)
	if err != nil {
		return nil, fmt.Errorf("build select rosters by users query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []rosterJoinedRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rosters by users: %w", err)
	}

	return assembleRosters(rows), nil
}

func (r *RosterRepository) ReplaceSelection(ctx context.Context, rosterID string, sel roster.Selection) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for selection replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateRosterQuery = `
UPDATE rosters
SET captain_public_id = :captain_public_id,
    updated_at = NOW()
WHERE public_id = :public_id
  AND deleted_at IS NULL`
	updateSQL, updateArgs, err := sqlx.Named(updateRosterQuery, map[string]any{
		"captain_public_id": sel.CaptainID,
		"public_id":         rosterID,
	})
	if err != nil {
		return fmt.Errorf("bind update roster query: %w", err)
	}
	updateSQL = tx.Rebind(updateSQL)
	if _, err := tx.ExecContext(ctx, updateSQL, updateArgs...); err != nil {
		return fmt.Errorf("update roster captain: %w", err)
	}

	const clearQuery = `
DELETE FROM roster_players
WHERE roster_public_id = $1`
	if _, err := tx.ExecContext(ctx, clearQuery, rosterID); err != nil {
		return fmt.Errorf("clear roster players: %w", err)
	}

	if err := insertSelection(ctx, tx, rosterID, sel); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit selection replace tx: %w", err)
	}

	return nil
}

func insertSelection(ctx context.Context, tx *sqlx.Tx, rosterID string, sel roster.Selection) error {
	const insertPlayerQuery = `
INSERT INTO roster_players (roster_public_id, player_public_id, slot, assigned_position, slot_order)
VALUES (:roster_public_id, :player_public_id, :slot, :assigned_position, :slot_order)`

	insert := func(playerID, slot string, assigned *string, order int) error {
		rowSQL, rowArgs, err := sqlx.Named(insertPlayerQuery, map[string]any{
			"roster_public_id":  rosterID,
			"player_public_id":  playerID,
			"slot":              slot,
			"assigned_position": assigned,
			"slot_order":        order,
		})
		if err != nil {
			return fmt.Errorf("bind insert roster player=%s query: %w", playerID, err)
		}
		rowSQL = tx.Rebind(rowSQL)
		if _, err := tx.ExecContext(ctx, rowSQL, rowArgs...); err != nil {
			return fmt.Errorf("insert roster player=%s: %w", playerID, err)
		}
		return nil
	}

	for i, a := range sel.Starters {
		assigned := string(a.Position)
		if err := insert(a.PlayerID, rosterSlotStarter, &assigned, i); err != nil {
			return err
		}
	}
	for i, playerID := range sel.BenchPlayerIDs {
		if err := insert(playerID, rosterSlotBench, nil, i); err != nil {
			return err
		}
	}

	return nil
}

func (r *RosterRepository) getOne(ctx context.Context, column, value string) (roster.Roster, bool, error) {
	query := rosterJoinQuery + "\n  AND " + column + " = $1" + rosterJoinOrder

	var rows []rosterJoinedRow
	if err := r.db.SelectContext(ctx, &rows, query, value); err != nil {
		return roster.Roster{}, false, fmt.Errorf("select roster: %w", err)
	}
	if len(rows) == 0 {
		return roster.Roster{}, false, nil
	}

	return assembleRosters(rows)[0], true, nil
}
