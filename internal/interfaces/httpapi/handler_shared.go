package httpapi

import (
	"context"
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/league"
	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
	"github.com/mrrfc/mrr-fantasy/internal/domain/scoring"
	"github.com/mrrfc/mrr-fantasy/internal/usecase"
)

type starterAssignmentRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Position string `json:"position" validate:"required,oneof=GK DEF MID FWD"`
}

// Starter and bench counts are checked by the roster rules, not tags, so a
// wrong-sized submission reports the roster-size reason.
type createTeamRequest struct {
	Name           string                     `json:"name" validate:"required,max=100"`
	Starters       []starterAssignmentRequest `json:"starters" validate:"required,dive"`
	BenchPlayerIDs []string                   `json:"bench_player_ids" validate:"required,dive,required"`
	CaptainID      string                     `json:"captain_id" validate:"required"`
}

type setTeamPlayersRequest struct {
	Starters       []starterAssignmentRequest `json:"starters" validate:"required,dive"`
	BenchPlayerIDs []string                   `json:"bench_player_ids" validate:"required,dive,required"`
	CaptainID      string                     `json:"captain_id" validate:"required"`
}

type createLeagueRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type joinLeagueRequest struct {
	InviteCode string `json:"invite_code" validate:"required,len=8"`
}

type performanceLineRequest struct {
	PlayerID    string `json:"player_id" validate:"required"`
	Week        int    `json:"week" validate:"required,min=1"`
	Goals       int    `json:"goals" validate:"min=0"`
	Assists     int    `json:"assists" validate:"min=0"`
	CleanSheets int    `json:"clean_sheets" validate:"min=0"`
	Saves       int    `json:"saves" validate:"min=0"`
	Tackles     int    `json:"tackles" validate:"min=0"`
}

type recordPerformancesRequest struct {
	Performances []performanceLineRequest `json:"performances" validate:"required,min=1,dive"`
}

type recomputePointsRequest struct {
	MaxWorkers int `json:"max_workers" validate:"min=0"`
}

type playerDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Position          string  `json:"position"`
	SecondaryPosition string  `json:"secondary_position,omitempty"`
	IsMarquee         bool    `json:"is_marquee"`
	TeamName          string  `json:"team_name"`
	PhotoURL          string  `json:"photo_url,omitempty"`
	Price             float64 `json:"price"`
	TotalPoints       int     `json:"total_points"`
}

type starterDTO struct {
	Player           playerDTO `json:"player"`
	AssignedPosition string    `json:"assigned_position"`
	IsCaptain        bool      `json:"is_captain"`
}

type teamDTO struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Name         string       `json:"name"`
	CaptainID    string       `json:"captain_id"`
	Starters     []starterDTO `json:"starters"`
	Bench        []playerDTO  `json:"bench"`
	TotalPoints  int          `json:"total_points"`
	CreatedAtUTC string       `json:"created_at_utc"`
}

type starterPointsDTO struct {
	Player           playerDTO `json:"player"`
	AssignedPosition string    `json:"assigned_position"`
	IsCaptain        bool      `json:"is_captain"`
	Points           int       `json:"points"`
}

type teamPointsDTO struct {
	TeamID      string             `json:"team_id"`
	TeamName    string             `json:"team_name"`
	Starters    []starterPointsDTO `json:"starters"`
	TotalPoints int                `json:"total_points"`
}

type performanceDTO struct {
	ID           string `json:"id"`
	PlayerID     string `json:"player_id"`
	Week         int    `json:"week"`
	Goals        int    `json:"goals"`
	Assists      int    `json:"assists"`
	CleanSheets  int    `json:"clean_sheets"`
	Saves        int    `json:"saves"`
	Tackles      int    `json:"tackles"`
	TotalPoints  int    `json:"total_points"`
	UpdatedAtUTC string `json:"updated_at_utc"`
}

type leagueDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	InviteCode   string `json:"invite_code"`
	OwnerID      string `json:"owner_id"`
	MemberCount  int    `json:"member_count,omitempty"`
	CreatedAtUTC string `json:"created_at_utc"`
}

type standingDTO struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	TeamName    string `json:"team_name"`
	TotalPoints int    `json:"total_points"`
}

type recomputeResultDTO struct {
	PlayerCount      int   `json:"player_count"`
	PerformanceCount int   `json:"performance_count"`
	WorkerCount      int   `json:"worker_count"`
	ChangedCount     int   `json:"changed_count"`
	DurationMs       int64 `json:"duration_ms"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:                v.ID,
		Name:              v.Name,
		Position:          string(v.Position),
		SecondaryPosition: string(v.SecondaryPosition),
		IsMarquee:         v.IsMarquee,
		TeamName:          v.TeamName,
		PhotoURL:          v.PhotoURL,
		Price:             float64(v.PriceCents) / 100,
		TotalPoints:       v.TotalPoints,
	}
}

func teamToDTO(ctx context.Context, v roster.DisplayRoster) teamDTO {
	_, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	starters := make([]starterDTO, 0, len(v.Starters))
	for _, s := range v.Starters {
		starters = append(starters, starterDTO{
			Player:           playerToDTO(s.Player),
			AssignedPosition: string(s.AssignedPosition),
			IsCaptain:        s.Player.ID == v.CaptainID,
		})
	}

	bench := make([]playerDTO, 0, len(v.Bench))
	for _, p := range v.Bench {
		bench = append(bench, playerToDTO(p))
	}

	return teamDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		Name:         v.Name,
		CaptainID:    v.CaptainID,
		Starters:     starters,
		Bench:        bench,
		TotalPoints:  v.TotalPoints,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func teamPointsToDTO(v usecase.TeamPoints) teamPointsDTO {
	starters := make([]starterPointsDTO, 0, len(v.Starters))
	for _, s := range v.Starters {
		starters = append(starters, starterPointsDTO{
			Player:           playerToDTO(s.Player),
			AssignedPosition: string(s.AssignedPosition),
			IsCaptain:        s.IsCaptain,
			Points:           s.Points,
		})
	}

	return teamPointsDTO{
		TeamID:      v.RosterID,
		TeamName:    v.RosterName,
		Starters:    starters,
		TotalPoints: v.TotalPoints,
	}
}

func performanceToDTO(v scoring.WeeklyPerformance) performanceDTO {
	return performanceDTO{
		ID:           v.ID,
		PlayerID:     v.PlayerID,
		Week:         v.Week,
		Goals:        v.Goals,
		Assists:      v.Assists,
		CleanSheets:  v.CleanSheets,
		Saves:        v.Saves,
		Tackles:      v.Tackles,
		TotalPoints:  v.TotalPoints,
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func leagueToDTO(v league.League, memberCount int) leagueDTO {
	return leagueDTO{
		ID:           v.ID,
		Name:         v.Name,
		InviteCode:   v.InviteCode,
		OwnerID:      v.OwnerID,
		MemberCount:  memberCount,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func standingToDTO(v league.Standing) standingDTO {
	return standingDTO{
		Rank:        v.Rank,
		UserID:      v.UserID,
		TeamName:    v.RosterName,
		TotalPoints: v.TotalPoints,
	}
}
