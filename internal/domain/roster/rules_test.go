package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
)

type stubCatalog struct {
	players map[string]player.Player
}

func (c stubCatalog) Resolve(_ context.Context, playerIDs []string) (map[string]player.Player, error) {
	out := make(map[string]player.Player, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := c.players[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func testCatalog() stubCatalog {
	mk := func(id, name string, pos, sec player.Position, price int64, marquee bool) player.Player {
		return player.Player{
			ID:                id,
			Name:              name,
			Position:          pos,
			SecondaryPosition: sec,
			PriceCents:        price,
			IsMarquee:         marquee,
		}
	}
	return stubCatalog{players: map[string]player.Player{
		"gk1":  mk("gk1", "Tom Keeper", player.PositionGoalkeeper, "", 500, false),
		"gk2":  mk("gk2", "Ben Gloves", player.PositionGoalkeeper, "", 400, false),
		"def1": mk("def1", "Carl Wall", player.PositionDefender, "", 700, false),
		"def2": mk("def2", "Side Back", player.PositionDefender, player.PositionMidfielder, 650, false),
		"def3": mk("def3", "Third Stopper", player.PositionDefender, "", 600, false),
		"mid1": mk("mid1", "Mike Engine", player.PositionMidfielder, "", 800, false),
		"mid2": mk("mid2", "Pass Master", player.PositionMidfielder, player.PositionForward, 850, true),
		"mid3": mk("mid3", "Bench Runner", player.PositionMidfielder, "", 300, false),
		"fwd1": mk("fwd1", "Goal Machine", player.PositionForward, "", 900, true),
		"fwd2": mk("fwd2", "Second Striker", player.PositionForward, "", 750, false),
		"exp1": mk("exp1", "Pricey Star", player.PositionForward, "", 4000, false),
		"exp2": mk("exp2", "Golden Boot", player.PositionMidfielder, "", 4000, true),
	}}
}

func validSelection() Selection {
	return Selection{
		Starters: []StarterAssignment{
			{PlayerID: "gk1", Position: player.PositionGoalkeeper},
			{PlayerID: "def1", Position: player.PositionDefender},
			{PlayerID: "def2", Position: player.PositionDefender},
			{PlayerID: "mid1", Position: player.PositionMidfielder},
			{PlayerID: "mid2", Position: player.PositionMidfielder},
			{PlayerID: "fwd1", Position: player.PositionForward},
		},
		BenchPlayerIDs: []string{"gk2", "def3", "fwd2"},
		CaptainID:      "fwd1",
	}
}

func TestValidateSelectionAccepts(t *testing.T) {
	if err := ValidateSelection(context.Background(), testCatalog(), validSelection(), "Riski Owner"); err != nil {
		t.Fatalf("expected valid selection, got %v", err)
	}
}

func TestValidateSelectionSecondaryPositionCounts(t *testing.T) {
	sel := validSelection()
	// def2 carries a MID secondary; fielding them there must pass.
	sel.Starters[2] = StarterAssignment{PlayerID: "def2", Position: player.PositionMidfielder}
	sel.Starters[4] = StarterAssignment{PlayerID: "def3", Position: player.PositionDefender}
	sel.BenchPlayerIDs = []string{"gk2", "mid2", "fwd2"}

	if err := ValidateSelection(context.Background(), testCatalog(), sel, "Riski Owner"); err != nil {
		t.Fatalf("expected secondary-position lineup to pass, got %v", err)
	}
}

func TestValidateSelectionRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Selection)
		owner   string
		wantErr error
	}{
		{
			name:    "too few starters",
			mutate:  func(s *Selection) { s.Starters = s.Starters[:5] },
			wantErr: ErrRosterSize,
		},
		{
			name:    "too many bench",
			mutate:  func(s *Selection) { s.BenchPlayerIDs = append(s.BenchPlayerIDs, "def3") },
			wantErr: ErrRosterSize,
		},
		{
			name:    "duplicate across starters and bench",
			mutate:  func(s *Selection) { s.BenchPlayerIDs[1] = "fwd1" },
			wantErr: ErrDuplicatePlayer,
		},
		{
			name:    "captain on bench",
			mutate:  func(s *Selection) { s.CaptainID = "gk2" },
			wantErr: ErrCaptainNotStarter,
		},
		{
			name:    "unknown player id",
			mutate:  func(s *Selection) { s.Starters[5].PlayerID = "ghost" },
			wantErr: ErrUnknownPlayer,
		},
		{
			name: "two goalkeepers fielded",
			mutate: func(s *Selection) {
				s.Starters[1] = StarterAssignment{PlayerID: "gk2", Position: player.PositionGoalkeeper}
				s.BenchPlayerIDs = []string{"def1", "def3", "fwd2"}
			},
			wantErr: ErrInvalidFormation,
		},
		{
			name: "starter outside eligible positions",
			mutate: func(s *Selection) {
				s.Starters[1] = StarterAssignment{PlayerID: "def1", Position: player.PositionForward}
				s.Starters[5] = StarterAssignment{PlayerID: "fwd1", Position: player.PositionForward}
			},
			wantErr: ErrIneligiblePosition,
		},
		{
			name:    "captain named after owner",
			owner:   "  goal machine ",
			mutate:  func(s *Selection) {},
			wantErr: ErrCaptainNameConflict,
		},
		{
			name: "three marquee players",
			mutate: func(s *Selection) {
				s.BenchPlayerIDs = []string{"gk2", "def3", "exp2"}
			},
			wantErr: ErrMarqueeLimit,
		},
		{
			name: "squad over budget",
			mutate: func(s *Selection) {
				s.Starters[5] = StarterAssignment{PlayerID: "exp1", Position: player.PositionForward}
				s.BenchPlayerIDs = []string{"gk2", "def3", "fwd1"}
				s.CaptainID = "exp1"
			},
			wantErr: ErrBudgetExceeded,
		},
		{
			name: "bench without goalkeeper",
			mutate: func(s *Selection) {
				s.BenchPlayerIDs = []string{"def3", "fwd2", "mid3"}
			},
			wantErr: ErrBenchComposition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := validSelection()
			tt.mutate(&sel)

			owner := tt.owner
			if owner == "" {
				owner = "Riski Owner"
			}

			err := ValidateSelection(context.Background(), testCatalog(), sel, owner)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateSelectionOrderIsStable(t *testing.T) {
	// A payload breaking both size and budget rules must always report
	// the size failure first.
	sel := validSelection()
	sel.Starters[5] = StarterAssignment{PlayerID: "exp1", Position: player.PositionForward}
	sel.CaptainID = "exp1"
	sel.BenchPlayerIDs = sel.BenchPlayerIDs[:2]

	for i := 0; i < 10; i++ {
		err := ValidateSelection(context.Background(), testCatalog(), sel, "Riski Owner")
		if !errors.Is(err, ErrRosterSize) {
			t.Fatalf("run %d: expected %v, got %v", i, ErrRosterSize, err)
		}
	}
}
