package postgres

import (
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/league"
)

type leagueTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	Name       string     `db:"name"`
	InviteCode string     `db:"invite_code"`
	OwnerID    string     `db:"owner_id"`
	CreatedAt  time.Time  `db:"created_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:         m.PublicID,
		Name:       m.Name,
		InviteCode: m.InviteCode,
		OwnerID:    m.OwnerID,
		CreatedAt:  m.CreatedAt,
	}
}

type leagueMemberTableModel struct {
	ID             int64     `db:"id"`
	LeaguePublicID string    `db:"league_public_id"`
	UserID         string    `db:"user_id"`
	JoinedAt       time.Time `db:"joined_at"`
}
