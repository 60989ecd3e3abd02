package scoring

import (
	"testing"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		pos  player.Position
		perf WeeklyPerformance
		want int
	}{
		{
			name: "forward brace with assist",
			pos:  player.PositionForward,
			perf: WeeklyPerformance{Goals: 2, Assists: 1},
			want: 25,
		},
		{
			name: "midfielder goal two assists one tackle",
			pos:  player.PositionMidfielder,
			perf: WeeklyPerformance{Goals: 1, Assists: 2, Tackles: 1},
			want: 20,
		},
		{
			name: "goalkeeper scores with clean sheet and saves",
			pos:  player.PositionGoalkeeper,
			perf: WeeklyPerformance{Goals: 1, CleanSheets: 1, Saves: 3},
			want: 24,
		},
		{
			name: "defender clean sheet and tackles",
			pos:  player.PositionDefender,
			perf: WeeklyPerformance{CleanSheets: 1, Tackles: 3},
			want: 12,
		},
		{
			name: "goalkeeper shutout",
			pos:  player.PositionGoalkeeper,
			perf: WeeklyPerformance{CleanSheets: 1, Saves: 5},
			want: 16,
		},
		{
			name: "defender double clean sheet week",
			pos:  player.PositionDefender,
			perf: WeeklyPerformance{CleanSheets: 2},
			want: 12,
		},
		{
			name: "clean sheet ignored for forwards",
			pos:  player.PositionForward,
			perf: WeeklyPerformance{CleanSheets: 1},
			want: 0,
		},
		{
			name: "saves ignored for outfield players",
			pos:  player.PositionDefender,
			perf: WeeklyPerformance{Saves: 4},
			want: 0,
		},
		{
			name: "empty stat line",
			pos:  player.PositionMidfielder,
			perf: WeeklyPerformance{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.pos, tt.perf); got != tt.want {
				t.Fatalf("expected %d points, got %d", tt.want, got)
			}
		})
	}
}

func TestScoreIsMonotonic(t *testing.T) {
	base := WeeklyPerformance{Goals: 1, Assists: 1, Tackles: 1}

	for _, pos := range []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionForward,
	} {
		before := Score(pos, base)

		bumped := base
		bumped.Goals++
		bumped.Saves++
		bumped.CleanSheets++
		after := Score(pos, bumped)

		if after < before {
			t.Fatalf("%s: adding stats lowered the score from %d to %d", pos, before, after)
		}
	}
}
