package league

import (
	"fmt"
	"time"
)

// League is a private scoring group joined by invite code.
type League struct {
	ID         string
	Name       string
	InviteCode string
	OwnerID    string
	CreatedAt  time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.InviteCode == "" {
		return fmt.Errorf("league invite code is required")
	}
	if l.OwnerID == "" {
		return fmt.Errorf("league owner id is required")
	}

	return nil
}

// Member records a user's membership in a league.
type Member struct {
	LeagueID string
	UserID   string
	JoinedAt time.Time
}

// Standing is one leaderboard row. Members with no roster score zero but
// still appear.
type Standing struct {
	Rank        int
	UserID      string
	RosterName  string
	TotalPoints int
}
