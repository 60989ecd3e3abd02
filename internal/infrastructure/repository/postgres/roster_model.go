package postgres

import (
	"database/sql"
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
)

const (
	rosterSlotStarter = "STARTER"
	rosterSlotBench   = "BENCH"
)

// rosterJoinedRow is one row of the rosters LEFT JOIN roster_players read.
// Player columns are null for a roster without slot rows.
type rosterJoinedRow struct {
	PublicID         string         `db:"public_id"`
	UserID           string         `db:"user_id"`
	Name             string         `db:"name"`
	CaptainPublicID  string         `db:"captain_public_id"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	PlayerPublicID   sql.NullString `db:"player_public_id"`
	Slot             sql.NullString `db:"slot"`
	AssignedPosition sql.NullString `db:"assigned_position"`
	SlotOrder        sql.NullInt64  `db:"slot_order"`
}

// assembleRosters groups joined rows into rosters. Rows must arrive ordered
// by roster, then slot, then slot order.
func assembleRosters(rows []rosterJoinedRow) []roster.Roster {
	out := make([]roster.Roster, 0)
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].ID != row.PublicID {
			out = append(out, roster.Roster{
				ID:        row.PublicID,
				UserID:    row.UserID,
				Name:      row.Name,
				CaptainID: row.CaptainPublicID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			})
		}
		if !row.PlayerPublicID.Valid {
			continue
		}

		current := &out[len(out)-1]
		switch row.Slot.String {
		case rosterSlotStarter:
			current.Starters = append(current.Starters, roster.StarterAssignment{
				PlayerID: row.PlayerPublicID.String,
				Position: player.Position(row.AssignedPosition.String),
			})
		case rosterSlotBench:
			current.BenchPlayerIDs = append(current.BenchPlayerIDs, row.PlayerPublicID.String)
		}
	}

	return out
}
