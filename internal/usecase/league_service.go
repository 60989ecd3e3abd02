package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mrrfc/mrr-fantasy/internal/domain/league"
	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
	idgen "github.com/mrrfc/mrr-fantasy/internal/platform/id"
	"github.com/mrrfc/mrr-fantasy/internal/platform/logging"
)

const (
	inviteCodeLength   = 8
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// standingsConcurrency bounds the per-member roster lookups when
	// building a leaderboard.
	standingsConcurrency = 8
)

// LeagueDetail is a league plus its membership size.
type LeagueDetail struct {
	League      league.League
	MemberCount int
}

type LeagueService struct {
	leagueRepo league.Repository
	rosterRepo roster.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateLeague opens a new private league and enrolls the creator as its
// first member.
func (s *LeagueService) CreateLeague(ctx context.Context, ownerID, name string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.CreateLeague")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	name = strings.TrimSpace(name)
	if ownerID == "" {
		return league.League{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	code, err := newInviteCode()
	if err != nil {
		return league.League{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now().UTC()
	l := league.League{
		ID:         leagueID,
		Name:       name,
		InviteCode: code,
		OwnerID:    ownerID,
		CreatedAt:  now,
	}
	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Create(ctx, l); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}
	if err := s.leagueRepo.AddMember(ctx, league.Member{LeagueID: l.ID, UserID: ownerID, JoinedAt: now}); err != nil {
		return league.League{}, fmt.Errorf("add owner membership: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", l.ID,
		"owner_id", ownerID,
	)

	return l, nil
}

// JoinLeague enrolls a user into the league behind an invite code.
func (s *LeagueService) JoinLeague(ctx context.Context, userID, inviteCode string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.JoinLeague")
	defer span.End()

	userID = strings.TrimSpace(userID)
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if inviteCode == "" {
		return league.League{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by invite code: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: no league for invite code", ErrNotFound)
	}

	member, err := s.leagueRepo.IsMember(ctx, l.ID, userID)
	if err != nil {
		return league.League{}, fmt.Errorf("check membership: %w", err)
	}
	if member {
		return league.League{}, fmt.Errorf("%w: already a member of league=%s", ErrConflict, l.ID)
	}

	if err := s.leagueRepo.AddMember(ctx, league.Member{LeagueID: l.ID, UserID: userID, JoinedAt: s.now().UTC()}); err != nil {
		return league.League{}, fmt.Errorf("add membership: %w", err)
	}

	s.logger.InfoContext(ctx, "league joined",
		"league_id", l.ID,
		"user_id", userID,
	)

	return l, nil
}

// GetLeague returns a league with its member count.
func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (LeagueDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return LeagueDetail{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return LeagueDetail{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return LeagueDetail{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return LeagueDetail{}, fmt.Errorf("list members: %w", err)
	}

	return LeagueDetail{League: l, MemberCount: len(members)}, nil
}

// Leaderboard ranks every member of a league by their roster's cumulative
// starter points. Members without a roster rank with zero points.
func (s *LeagueService) Leaderboard(ctx context.Context, leagueID string) ([]league.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Leaderboard")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	standings := make([]league.Standing, len(members))
	var mu sync.Mutex

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(standingsConcurrency)
	for i, m := range members {
		i, m := i, m
		p.Go(func(ctx context.Context) error {
			standing, err := s.memberStanding(ctx, m.UserID)
			if err != nil {
				return err
			}

			mu.Lock()
			standings[i] = standing
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("compute standings: %w", err)
	}

	// Equal totals keep membership order, so ties stay stable across reads.
	sort.SliceStable(standings, func(a, b int) bool {
		return standings[a].TotalPoints > standings[b].TotalPoints
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}

func (s *LeagueService) memberStanding(ctx context.Context, userID string) (league.Standing, error) {
	r, exists, err := s.rosterRepo.GetByUser(ctx, userID)
	if err != nil {
		return league.Standing{}, fmt.Errorf("get roster for user=%s: %w", userID, err)
	}
	if !exists {
		return league.Standing{UserID: userID}, nil
	}

	catalog := playerCatalog{repo: s.playerRepo}
	ids := make([]string, 0, len(r.Starters))
	for _, a := range r.Starters {
		ids = append(ids, a.PlayerID)
	}

	players, err := catalog.Resolve(ctx, ids)
	if err != nil {
		return league.Standing{}, fmt.Errorf("resolve starters for user=%s: %w", userID, err)
	}

	total := 0
	for _, a := range r.Starters {
		total += players[a.PlayerID].TotalPoints
	}

	return league.Standing{
		UserID:      userID,
		RosterName:  r.Name,
		TotalPoints: total,
	}, nil
}

func newInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	code := make([]byte, inviteCodeLength)
	for i, b := range buf {
		code[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}

	return string(code), nil
}
