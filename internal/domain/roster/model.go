package roster

import (
	"fmt"
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
)

const (
	// StarterCount and BenchCount fix the roster shape: 6 fielded players
	// plus 3 reserves, 9 in total.
	StarterCount = 6
	BenchCount   = 3
	SquadSize    = StarterCount + BenchCount
)

// StarterAssignment pairs a fielded player with the position they occupy for
// the season. The assignment may differ from the player's primary position
// when they carry a secondary eligibility.
type StarterAssignment struct {
	PlayerID string
	Position player.Position
}

// Selection is the full replace-all payload for a roster: 6 starters, 3 bench
// ids and a captain. It is applied atomically or not at all.
type Selection struct {
	Starters       []StarterAssignment
	BenchPlayerIDs []string
	CaptainID      string
}

// AllPlayerIDs returns starter ids followed by bench ids.
func (s Selection) AllPlayerIDs() []string {
	out := make([]string, 0, len(s.Starters)+len(s.BenchPlayerIDs))
	for _, a := range s.Starters {
		out = append(out, a.PlayerID)
	}
	out = append(out, s.BenchPlayerIDs...)
	return out
}

// Roster is a user's fantasy team. One per user for the whole season.
type Roster struct {
	ID             string
	UserID         string
	Name           string
	CaptainID      string
	Starters       []StarterAssignment
	BenchPlayerIDs []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r Roster) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("roster id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("roster user id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("roster name is required")
	}

	return nil
}

// DisplayStarter is a catalog-joined starter for API output.
type DisplayStarter struct {
	Player           player.Player
	AssignedPosition player.Position
}

// DisplayRoster is the materialized view of a roster: selections joined
// against the current catalog, with total points recomputed from the
// starters' cumulative points. Bench players never contribute.
type DisplayRoster struct {
	ID          string
	UserID      string
	Name        string
	CaptainID   string
	Starters    []DisplayStarter
	Bench       []player.Player
	TotalPoints int
	CreatedAt   time.Time
}
