package scoring

import "github.com/mrrfc/mrr-fantasy/internal/domain/player"

// Point values per stat. Goals pay by position, defensive stats only count
// for the positions that produce them.
const (
	goalForwardPoints    = 10
	goalMidfielderPoints = 8
	goalDefensivePoints  = 12
	assistPoints         = 5
	cleanSheetPoints     = 6
	savePoints           = 2
	tacklePoints         = 2
)

// Score computes the week's points for a stat line given the player's primary
// position. Pure function of its inputs; an empty stat line scores zero.
func Score(pos player.Position, perf WeeklyPerformance) int {
	total := 0

	switch pos {
	case player.PositionForward:
		total += perf.Goals * goalForwardPoints
	case player.PositionMidfielder:
		total += perf.Goals * goalMidfielderPoints
	case player.PositionDefender, player.PositionGoalkeeper:
		total += perf.Goals * goalDefensivePoints
	}

	total += perf.Assists * assistPoints

	if pos == player.PositionDefender || pos == player.PositionGoalkeeper {
		total += perf.CleanSheets * cleanSheetPoints
	}

	if pos == player.PositionGoalkeeper {
		total += perf.Saves * savePoints
	}

	total += perf.Tackles * tacklePoints

	return total
}
