package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mrrfc/mrr-fantasy/internal/domain/league"
)

type LeagueRepository struct {
	mu           sync.RWMutex
	leagues      map[string]league.League
	byInviteCode map[string]string
	members      map[string][]league.Member
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{
		leagues:      make(map[string]league.League),
		byInviteCode: make(map[string]string),
		members:      make(map[string][]league.Member),
	}
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leagues[l.ID] = l
	r.byInviteCode[l.InviteCode] = l.ID

	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leagues[leagueID]
	return l, ok, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, code string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leagueID, ok := r.byInviteCode[code]
	if !ok {
		return league.League{}, false, nil
	}

	l, ok := r.leagues[leagueID]
	return l, ok, nil
}

func (r *LeagueRepository) AddMember(_ context.Context, m league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members[m.LeagueID] {
		if existing.UserID == m.UserID {
			return nil
		}
	}
	r.members[m.LeagueID] = append(r.members[m.LeagueID], m)

	return nil
}

func (r *LeagueRepository) IsMember(_ context.Context, leagueID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members[leagueID] {
		if m.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.members[leagueID]
	out := make([]league.Member, len(members))
	copy(out, members)

	sort.SliceStable(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })

	return out, nil
}
