package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}

	return &PlayerRepository{players: index}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if filter.Position != "" && !p.EligibleAt(filter.Position) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// SetTotals overwrites cumulative totals in place. Used by the scoring
// repository to keep the catalog's cached totals in sync.
func (r *PlayerRepository) SetTotals(_ context.Context, totals map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, total := range totals {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		p.TotalPoints = total
		r.players[id] = p
	}

	return nil
}
