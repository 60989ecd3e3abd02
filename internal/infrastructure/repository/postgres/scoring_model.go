package postgres

import (
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/scoring"
)

type weeklyPerformanceTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	PlayerPublicID string    `db:"player_public_id"`
	Week           int       `db:"week"`
	Goals          int       `db:"goals"`
	Assists        int       `db:"assists"`
	CleanSheets    int       `db:"clean_sheets"`
	Saves          int       `db:"saves"`
	Tackles        int       `db:"tackles"`
	TotalPoints    int       `db:"total_points"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (m weeklyPerformanceTableModel) toDomain() scoring.WeeklyPerformance {
	return scoring.WeeklyPerformance{
		ID:          m.PublicID,
		PlayerID:    m.PlayerPublicID,
		Week:        m.Week,
		Goals:       m.Goals,
		Assists:     m.Assists,
		CleanSheets: m.CleanSheets,
		Saves:       m.Saves,
		Tackles:     m.Tackles,
		TotalPoints: m.TotalPoints,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
