package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/mrrfc/mrr-fantasy/internal/domain/league"
	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	basecache "github.com/mrrfc/mrr-fantasy/internal/platform/cache"
)

// PlayerRepository memoizes catalog reads. The catalog only changes through
// seeding and recompute runs, so short TTLs keep it fresh enough.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	key := "player:list:" + string(filter.Position) + ":" + strings.ToLower(filter.Search)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	sorted := append([]string(nil), playerIDs...)
	sort.Strings(sorted)

	key := "player:ids:" + strings.Join(sorted, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

// LeagueRepository caches league lookups and drops affected keys on writes.
// Membership reads stay uncached so a join is visible immediately.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	if err := r.next.Create(ctx, l); err != nil {
		return err
	}

	r.cache.Delete(ctx, "league:id:"+l.ID)
	r.cache.Delete(ctx, "league:code:"+l.InviteCode)

	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := "league:id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, code string) (league.League, bool, error) {
	key := "league:code:" + code
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByInviteCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, m league.Member) error {
	return r.next.AddMember(ctx, m)
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	return r.next.IsMember(ctx, leagueID, userID)
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	return r.next.ListMembers(ctx, leagueID)
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}
