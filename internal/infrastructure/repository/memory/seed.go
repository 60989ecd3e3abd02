package memory

import "github.com/mrrfc/mrr-fantasy/internal/domain/player"

const seedTeamName = "MRR Fantasy"

// SeedPlayers returns the development player pool used by the memory
// backend and the test suites.
func SeedPlayers() []player.Player {
	mk := func(id, name string, pos, sec player.Position, priceCents int64, marquee bool) player.Player {
		return player.Player{
			ID:                id,
			Name:              name,
			Position:          pos,
			SecondaryPosition: sec,
			TeamName:          seedTeamName,
			PriceCents:        priceCents,
			IsMarquee:         marquee,
		}
	}

	return []player.Player{
		mk("mrr-gk-01", "Nitesh Das", player.PositionGoalkeeper, player.PositionDefender, 700, false),
		mk("mrr-gk-02", "Bishnu Raj Tamang", player.PositionGoalkeeper, player.PositionMidfielder, 800, false),
		mk("mrr-gk-03", "Himal Puri", player.PositionGoalkeeper, "", 500, false),
		mk("mrr-gk-04", "Anod Shrestha", player.PositionGoalkeeper, "", 1000, true),
		mk("mrr-fwd-01", "Khagendra Kandel", player.PositionForward, player.PositionDefender, 700, false),
		mk("mrr-fwd-02", "Arun Lamichhane", player.PositionForward, player.PositionMidfielder, 700, false),
		mk("mrr-fwd-03", "Aashish Tangnami", player.PositionForward, player.PositionMidfielder, 1000, true),
		mk("mrr-fwd-04", "Kaushal Niraula", player.PositionForward, player.PositionMidfielder, 500, false),
		mk("mrr-fwd-05", "Rajeev Lamichhaney", player.PositionForward, player.PositionMidfielder, 1000, true),
		mk("mrr-fwd-06", "Aashis Bhattarai", player.PositionForward, player.PositionDefender, 1000, true),
		mk("mrr-fwd-07", "Dip Kc", player.PositionForward, player.PositionMidfielder, 1000, true),
		mk("mrr-fwd-08", "Sanish Maharjan", player.PositionForward, player.PositionMidfielder, 600, false),
		mk("mrr-fwd-09", "Devendra Nepal", player.PositionForward, player.PositionMidfielder, 700, false),
		mk("mrr-fwd-10", "Rojal Pradhan", player.PositionForward, player.PositionDefender, 800, false),
		mk("mrr-fwd-11", "Razz Kumar Basnet", player.PositionForward, player.PositionMidfielder, 1000, true),
		mk("mrr-fwd-12", "Sudarshan Sapkota", player.PositionForward, "", 600, false),
		mk("mrr-fwd-13", "Siddhartha Shrestha", player.PositionForward, player.PositionMidfielder, 800, false),
		mk("mrr-fwd-14", "Dipak Mahatara", player.PositionForward, player.PositionDefender, 700, false),
		mk("mrr-mid-01", "Bishal Das", player.PositionMidfielder, player.PositionDefender, 600, false),
		mk("mrr-mid-02", "Subin Gajurel", player.PositionMidfielder, player.PositionDefender, 700, false),
		mk("mrr-mid-03", "Aayuush Rijal", player.PositionMidfielder, player.PositionDefender, 800, false),
		mk("mrr-mid-04", "Parbat Rokka", player.PositionMidfielder, player.PositionDefender, 900, false),
		mk("mrr-mid-05", "Sumit Luitel", player.PositionMidfielder, player.PositionDefender, 600, false),
		mk("mrr-def-01", "Dipendra Adhikari", player.PositionDefender, "", 600, false),
		mk("mrr-def-02", "Kishor Dhakal", player.PositionDefender, "", 900, false),
		mk("mrr-def-03", "Suprab Rajbhandari", player.PositionDefender, "", 500, false),
		mk("mrr-def-04", "Sabin Regmi", player.PositionDefender, "", 700, false),
		mk("mrr-def-05", "Anish Rana", player.PositionDefender, "", 700, false),
		mk("mrr-def-06", "Sumit Basnet", player.PositionDefender, "", 500, false),
	}
}
