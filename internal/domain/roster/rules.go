package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
)

const (
	// MarqueeLimit caps the number of marquee players across the whole squad.
	MarqueeLimit = 2

	// BudgetCapCents is the squad price ceiling, 70.00 in fixed-point cents.
	BudgetCapCents int64 = 7000
)

var (
	ErrRosterSize          = errors.New("roster must have 6 starters and 3 bench players")
	ErrDuplicatePlayer     = errors.New("duplicate player in roster")
	ErrCaptainNotStarter   = errors.New("captain must be one of the starters")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrInvalidFormation    = errors.New("invalid formation")
	ErrIneligiblePosition  = errors.New("player not eligible for assigned position")
	ErrCaptainNameConflict = errors.New("captain cannot share the owner's name")
	ErrMarqueeLimit        = errors.New("too many marquee players")
	ErrBudgetExceeded      = errors.New("roster exceeds budget")
	ErrBenchComposition    = errors.New("bench must have one goalkeeper and two outfield players")
)

// Catalog resolves player ids against the current player pool. Implemented by
// the player repository; kept narrow so the rules stay testable in isolation.
type Catalog interface {
	Resolve(ctx context.Context, playerIDs []string) (map[string]player.Player, error)
}

// ValidateSelection runs every roster rule against a proposed selection and
// returns the first violation. Checks run in a fixed order so the same bad
// payload always fails with the same error.
func ValidateSelection(ctx context.Context, catalog Catalog, sel Selection, ownerFullName string) error {
	if len(sel.Starters) != StarterCount || len(sel.BenchPlayerIDs) != BenchCount {
		return fmt.Errorf("%w: got %d starters and %d bench", ErrRosterSize, len(sel.Starters), len(sel.BenchPlayerIDs))
	}

	allIDs := sel.AllPlayerIDs()
	seen := make(map[string]struct{}, len(allIDs))
	for _, id := range allIDs {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
	}

	captainStarts := false
	for _, a := range sel.Starters {
		if a.PlayerID == sel.CaptainID {
			captainStarts = true
			break
		}
	}
	if !captainStarts {
		return fmt.Errorf("%w: %s", ErrCaptainNotStarter, sel.CaptainID)
	}

	players, err := catalog.Resolve(ctx, allIDs)
	if err != nil {
		return fmt.Errorf("resolve players: %w", err)
	}
	for _, id := range allIDs {
		if _, ok := players[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
	}

	counts := map[player.Position]int{}
	for _, a := range sel.Starters {
		counts[a.Position]++
	}
	if counts[player.PositionGoalkeeper] != 1 || counts[player.PositionDefender] < 1 || counts[player.PositionMidfielder] < 1 || counts[player.PositionForward] < 1 {
		return fmt.Errorf("%w: need exactly 1 GK and at least 1 DEF, MID and FWD", ErrInvalidFormation)
	}

	for _, a := range sel.Starters {
		p := players[a.PlayerID]
		if !p.EligibleAt(a.Position) {
			return fmt.Errorf("%w: %s plays %s", ErrIneligiblePosition, p.Name, p.ValidPositions())
		}
	}

	captain := players[sel.CaptainID]
	if ownerFullName != "" && strings.EqualFold(strings.TrimSpace(captain.Name), strings.TrimSpace(ownerFullName)) {
		return fmt.Errorf("%w: %s", ErrCaptainNameConflict, captain.Name)
	}

	marquee := 0
	var totalCents int64
	for _, id := range allIDs {
		p := players[id]
		if p.IsMarquee {
			marquee++
		}
		totalCents += p.PriceCents
	}
	if marquee > MarqueeLimit {
		return fmt.Errorf("%w: %d selected, limit is %d", ErrMarqueeLimit, marquee, MarqueeLimit)
	}
	if totalCents > BudgetCapCents {
		return fmt.Errorf("%w: %.2f over the %.2f cap", ErrBudgetExceeded, float64(totalCents)/100, float64(BudgetCapCents)/100)
	}

	benchGK := 0
	for _, id := range sel.BenchPlayerIDs {
		if players[id].Position == player.PositionGoalkeeper {
			benchGK++
		}
	}
	if benchGK != 1 {
		return fmt.Errorf("%w: got %d goalkeepers", ErrBenchComposition, benchGK)
	}

	return nil
}
