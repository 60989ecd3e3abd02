package player

import (
	"fmt"
	"time"
)

// Position represents football position categories used across roster and
// scoring rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is a selectable athlete in the season pool. Rows are written by the
// data-loading side; roster and scoring code only ever reads them.
type Player struct {
	ID                string
	Name              string
	Position          Position
	SecondaryPosition Position
	IsMarquee         bool
	TeamName          string
	PhotoURL          string
	PriceCents        int64
	TotalPoints       int
	CreatedAt         time.Time
}

// EligibleAt reports whether the player may be fielded at pos, either as
// their primary or secondary position.
func (p Player) EligibleAt(pos Position) bool {
	return p.Position == pos || (p.SecondaryPosition != "" && p.SecondaryPosition == pos)
}

// ValidPositions renders the player's eligible positions for error messages.
func (p Player) ValidPositions() string {
	if p.SecondaryPosition == "" {
		return string(p.Position)
	}
	return fmt.Sprintf("%s, %s", p.Position, p.SecondaryPosition)
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.SecondaryPosition != "" {
		if _, ok := AllPositions[p.SecondaryPosition]; !ok {
			return fmt.Errorf("invalid secondary position: %s", p.SecondaryPosition)
		}
	}
	if p.TeamName == "" {
		return fmt.Errorf("player team name is required")
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("player price cannot be negative")
	}

	return nil
}
