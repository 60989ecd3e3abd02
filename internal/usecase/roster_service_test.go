package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
	"github.com/mrrfc/mrr-fantasy/internal/domain/user"
	"github.com/mrrfc/mrr-fantasy/internal/infrastructure/repository/memory"
	"github.com/mrrfc/mrr-fantasy/internal/platform/logging"
)

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

func seedSelection() roster.Selection {
	return roster.Selection{
		Starters: []roster.StarterAssignment{
			{PlayerID: "mrr-gk-03", Position: player.PositionGoalkeeper},
			{PlayerID: "mrr-def-01", Position: player.PositionDefender},
			{PlayerID: "mrr-def-03", Position: player.PositionDefender},
			{PlayerID: "mrr-mid-01", Position: player.PositionMidfielder},
			{PlayerID: "mrr-mid-05", Position: player.PositionMidfielder},
			{PlayerID: "mrr-fwd-04", Position: player.PositionForward},
		},
		BenchPlayerIDs: []string{"mrr-gk-01", "mrr-def-06", "mrr-fwd-12"},
		CaptainID:      "mrr-fwd-04",
	}
}

func newRosterService() (*RosterService, *memory.RosterRepository, *memory.PlayerRepository) {
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository()
	service := NewRosterService(rosterRepo, playerRepo, &seqIDGenerator{prefix: "roster"}, logging.NewNop())

	return service, rosterRepo, playerRepo
}

func TestRosterService_CreateTeam_ThenGet(t *testing.T) {
	service, _, _ := newRosterService()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	principal := user.Principal{UserID: "user-1", FullName: "Sami Shrestha"}
	created, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{
		Name:      "Kathmandu XI",
		Selection: seedSelection(),
	})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	if created.ID != "roster-001" {
		t.Fatalf("expected roster id roster-001, got %s", created.ID)
	}
	if len(created.Starters) != roster.StarterCount || len(created.Bench) != roster.BenchCount {
		t.Fatalf("expected %d starters and %d bench, got %d and %d",
			roster.StarterCount, roster.BenchCount, len(created.Starters), len(created.Bench))
	}
	if created.TotalPoints != 0 {
		t.Fatalf("expected zero points for a fresh team, got %d", created.TotalPoints)
	}

	fetched, err := service.GetMyTeam(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get my team failed: %v", err)
	}
	if fetched.ID != created.ID || fetched.CaptainID != "mrr-fwd-04" {
		t.Fatalf("unexpected fetched roster: id=%s captain=%s", fetched.ID, fetched.CaptainID)
	}
}

func TestRosterService_CreateTeam_SecondCreateConflicts(t *testing.T) {
	service, _, _ := newRosterService()

	principal := user.Principal{UserID: "user-1", FullName: "Sami Shrestha"}
	if _, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{Name: "First", Selection: seedSelection()}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{Name: "Second", Selection: seedSelection()})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected %v, got %v", ErrConflict, err)
	}
}

func TestRosterService_CreateTeam_RejectsRuleViolations(t *testing.T) {
	service, _, _ := newRosterService()
	principal := user.Principal{UserID: "user-1", FullName: "Sami Shrestha"}

	sel := seedSelection()
	sel.CaptainID = "mrr-gk-01" // bench player

	_, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{Name: "Broken", Selection: sel})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected %v, got %v", ErrInvalidInput, err)
	}
	if !errors.Is(err, roster.ErrCaptainNotStarter) {
		t.Fatalf("expected %v in chain, got %v", roster.ErrCaptainNotStarter, err)
	}
}

func TestRosterService_CreateTeam_OwnerCannotCaptainNamesake(t *testing.T) {
	service, _, _ := newRosterService()

	// Owner shares the captain's name, case differences included.
	principal := user.Principal{UserID: "user-1", FullName: "kaushal NIRAULA"}

	_, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{Name: "Ego FC", Selection: seedSelection()})
	if !errors.Is(err, roster.ErrCaptainNameConflict) {
		t.Fatalf("expected %v, got %v", roster.ErrCaptainNameConflict, err)
	}
}

func TestRosterService_SetPlayers_ReplacesSelection(t *testing.T) {
	service, _, _ := newRosterService()
	principal := user.Principal{UserID: "user-1", FullName: "Sami Shrestha"}

	created, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{Name: "Kathmandu XI", Selection: seedSelection()})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	next := seedSelection()
	next.Starters[5] = roster.StarterAssignment{PlayerID: "mrr-fwd-08", Position: player.PositionForward}
	next.CaptainID = "mrr-fwd-08"

	updated, err := service.SetPlayers(t.Context(), principal, created.ID, next)
	if err != nil {
		t.Fatalf("set players failed: %v", err)
	}
	if updated.CaptainID != "mrr-fwd-08" {
		t.Fatalf("expected new captain mrr-fwd-08, got %s", updated.CaptainID)
	}

	// Resubmitting the same selection is a no-op, not an error.
	if _, err := service.SetPlayers(t.Context(), principal, created.ID, next); err != nil {
		t.Fatalf("idempotent resubmit failed: %v", err)
	}
}

func TestRosterService_SetPlayers_IdenticalResubmitKeepsTeam(t *testing.T) {
	service, _, _ := newRosterService()
	principal := user.Principal{UserID: "user-1", FullName: "Sami Shrestha"}

	created, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{Name: "Kathmandu XI", Selection: seedSelection()})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	resubmitted, err := service.SetPlayers(t.Context(), principal, created.ID, seedSelection())
	if err != nil {
		t.Fatalf("resubmit of accepted selection failed: %v", err)
	}

	if resubmitted.ID != created.ID || resubmitted.CaptainID != created.CaptainID {
		t.Fatalf("resubmit changed the team: %+v vs %+v", resubmitted, created)
	}
	if len(resubmitted.Starters) != len(created.Starters) {
		t.Fatalf("expected %d starters, got %d", len(created.Starters), len(resubmitted.Starters))
	}
	for i, st := range resubmitted.Starters {
		if st.Player.ID != created.Starters[i].Player.ID || st.AssignedPosition != created.Starters[i].AssignedPosition {
			t.Fatalf("starter %d changed: %+v vs %+v", i, st, created.Starters[i])
		}
	}
	for i, b := range resubmitted.Bench {
		if b.ID != created.Bench[i].ID {
			t.Fatalf("bench %d changed: %s vs %s", i, b.ID, created.Bench[i].ID)
		}
	}
	if resubmitted.TotalPoints != created.TotalPoints {
		t.Fatalf("total points changed: %d vs %d", resubmitted.TotalPoints, created.TotalPoints)
	}
}

func TestRosterService_SetPlayers_RejectedSelectionKeepsOldTeam(t *testing.T) {
	service, _, _ := newRosterService()
	principal := user.Principal{UserID: "user-1", FullName: "Sami Shrestha"}

	created, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{Name: "Kathmandu XI", Selection: seedSelection()})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	bad := seedSelection()
	bad.BenchPlayerIDs = bad.BenchPlayerIDs[:2]

	if _, err := service.SetPlayers(t.Context(), principal, created.ID, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected %v, got %v", ErrInvalidInput, err)
	}

	current, err := service.GetMyTeam(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get my team failed: %v", err)
	}
	if len(current.Bench) != roster.BenchCount {
		t.Fatalf("expected old bench intact, got %d players", len(current.Bench))
	}
}

func TestRosterService_SetPlayers_OwnershipAndMissing(t *testing.T) {
	service, _, _ := newRosterService()
	owner := user.Principal{UserID: "user-1", FullName: "Sami Shrestha"}
	intruder := user.Principal{UserID: "user-2", FullName: "Bikash Karki"}

	created, err := service.CreateTeam(t.Context(), owner, CreateTeamInput{Name: "Kathmandu XI", Selection: seedSelection()})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	if _, err := service.SetPlayers(t.Context(), intruder, created.ID, seedSelection()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected %v, got %v", ErrUnauthorized, err)
	}
	if _, err := service.SetPlayers(t.Context(), owner, "missing", seedSelection()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected %v, got %v", ErrNotFound, err)
	}
}

func TestRosterService_GetTeamPoints_CountsStartersOnly(t *testing.T) {
	service, _, playerRepo := newRosterService()
	principal := user.Principal{UserID: "user-1", FullName: "Sami Shrestha"}

	created, err := service.CreateTeam(t.Context(), principal, CreateTeamInput{Name: "Kathmandu XI", Selection: seedSelection()})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	// Starter scores 25, benched player scores 40. Only the starter counts.
	if err := playerRepo.SetTotals(t.Context(), map[string]int{
		"mrr-fwd-04": 25,
		"mrr-fwd-12": 40,
	}); err != nil {
		t.Fatalf("set totals failed: %v", err)
	}

	points, err := service.GetTeamPoints(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get team points failed: %v", err)
	}
	if points.TotalPoints != 25 {
		t.Fatalf("expected 25 total points, got %d", points.TotalPoints)
	}

	captains := 0
	for _, st := range points.Starters {
		if st.IsCaptain {
			captains++
			if st.Player.ID != "mrr-fwd-04" {
				t.Fatalf("expected captain mrr-fwd-04, got %s", st.Player.ID)
			}
		}
	}
	if captains != 1 {
		t.Fatalf("expected exactly one captain, got %d", captains)
	}
}
