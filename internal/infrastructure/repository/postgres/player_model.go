package postgres

import (
	"database/sql"
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
)

type playerTableModel struct {
	ID                int64          `db:"id"`
	PublicID          string         `db:"public_id"`
	Name              string         `db:"name"`
	Position          string         `db:"position"`
	SecondaryPosition sql.NullString `db:"secondary_position"`
	TeamName          string         `db:"team_name"`
	PhotoURL          string         `db:"photo_url"`
	PriceCents        int64          `db:"price_cents"`
	IsMarquee         bool           `db:"is_marquee"`
	TotalPoints       int            `db:"total_points"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	DeletedAt         *time.Time     `db:"deleted_at"`
}

func (m playerTableModel) toDomain() player.Player {
	p := player.Player{
		ID:          m.PublicID,
		Name:        m.Name,
		Position:    player.Position(m.Position),
		TeamName:    m.TeamName,
		PhotoURL:    m.PhotoURL,
		PriceCents:  m.PriceCents,
		IsMarquee:   m.IsMarquee,
		TotalPoints: m.TotalPoints,
		CreatedAt:   m.CreatedAt,
	}
	if m.SecondaryPosition.Valid {
		p.SecondaryPosition = player.Position(m.SecondaryPosition.String)
	}

	return p
}
