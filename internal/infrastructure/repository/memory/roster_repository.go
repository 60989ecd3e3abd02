package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
)

type RosterRepository struct {
	mu       sync.RWMutex
	rosters  map[string]roster.Roster
	byUserID map[string]string
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		rosters:  make(map[string]roster.Roster),
		byUserID: make(map[string]string),
	}
}

func (r *RosterRepository) Create(_ context.Context, ros roster.Roster, sel roster.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ros.CaptainID = sel.CaptainID
	ros.Starters = cloneStarters(sel.Starters)
	ros.BenchPlayerIDs = cloneStrings(sel.BenchPlayerIDs)

	r.rosters[ros.ID] = ros
	r.byUserID[ros.UserID] = ros.ID

	return nil
}

func (r *RosterRepository) GetByID(_ context.Context, rosterID string) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ros, ok := r.rosters[rosterID]
	if !ok {
		return roster.Roster{}, false, nil
	}

	return cloneRoster(ros), true, nil
}

func (r *RosterRepository) GetByUser(_ context.Context, userID string) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rosterID, ok := r.byUserID[userID]
	if !ok {
		return roster.Roster{}, false, nil
	}

	return cloneRoster(r.rosters[rosterID]), true, nil
}

func (r *RosterRepository) GetByUsers(_ context.Context, userIDs []string) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Roster, 0, len(userIDs))
	for _, userID := range userIDs {
		rosterID, ok := r.byUserID[userID]
		if !ok {
			continue
		}
		out = append(out, cloneRoster(r.rosters[rosterID]))
	}

	return out, nil
}

func (r *RosterRepository) ReplaceSelection(_ context.Context, rosterID string, sel roster.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ros, ok := r.rosters[rosterID]
	if !ok {
		return nil
	}

	ros.CaptainID = sel.CaptainID
	ros.Starters = cloneStarters(sel.Starters)
	ros.BenchPlayerIDs = cloneStrings(sel.BenchPlayerIDs)
	ros.UpdatedAt = time.Now().UTC()
	r.rosters[rosterID] = ros

	return nil
}

func cloneRoster(ros roster.Roster) roster.Roster {
	out := ros
	out.Starters = cloneStarters(ros.Starters)
	out.BenchPlayerIDs = cloneStrings(ros.BenchPlayerIDs)

	return out
}

func cloneStarters(in []roster.StarterAssignment) []roster.StarterAssignment {
	out := make([]roster.StarterAssignment, len(in))
	copy(out, in)

	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)

	return out
}
