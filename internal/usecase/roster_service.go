package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
	"github.com/mrrfc/mrr-fantasy/internal/domain/user"
	idgen "github.com/mrrfc/mrr-fantasy/internal/platform/id"
	"github.com/mrrfc/mrr-fantasy/internal/platform/logging"
)

// CreateTeamInput is the payload for creating a user's team.
type CreateTeamInput struct {
	Name      string
	Selection roster.Selection
}

// StarterPoints is one row of a team's points breakdown.
type StarterPoints struct {
	Player           player.Player
	AssignedPosition player.Position
	IsCaptain        bool
	Points           int
}

// TeamPoints is the full breakdown for a roster's starters. Bench players
// never score.
type TeamPoints struct {
	RosterID    string
	RosterName  string
	Starters    []StarterPoints
	TotalPoints int
}

type RosterService struct {
	rosterRepo roster.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// playerCatalog adapts the player repository to the roster rules' lookup.
type playerCatalog struct {
	repo player.Repository
}

func (c playerCatalog) Resolve(ctx context.Context, playerIDs []string) (map[string]player.Player, error) {
	players, err := c.repo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]player.Player, len(players))
	for _, p := range players {
		out[p.ID] = p
	}

	return out, nil
}

// CreateTeam builds a user's single season-long roster. A second create for
// the same user is rejected.
func (s *RosterService) CreateTeam(ctx context.Context, principal user.Principal, input CreateTeamInput) (roster.DisplayRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.CreateTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if principal.UserID == "" {
		return roster.DisplayRoster{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return roster.DisplayRoster{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	if _, exists, err := s.rosterRepo.GetByUser(ctx, principal.UserID); err != nil {
		return roster.DisplayRoster{}, fmt.Errorf("get existing roster: %w", err)
	} else if exists {
		return roster.DisplayRoster{}, fmt.Errorf("%w: user already has a team", ErrConflict)
	}

	if err := s.validateSelection(ctx, input.Selection, principal.FullName); err != nil {
		return roster.DisplayRoster{}, err
	}

	rosterID, err := s.idGen.NewID()
	if err != nil {
		return roster.DisplayRoster{}, fmt.Errorf("generate roster id: %w", err)
	}

	now := s.now().UTC()
	r := roster.Roster{
		ID:             rosterID,
		UserID:         principal.UserID,
		Name:           input.Name,
		CaptainID:      input.Selection.CaptainID,
		Starters:       input.Selection.Starters,
		BenchPlayerIDs: input.Selection.BenchPlayerIDs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.Validate(); err != nil {
		return roster.DisplayRoster{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.Create(ctx, r, input.Selection); err != nil {
		return roster.DisplayRoster{}, fmt.Errorf("create roster: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"user_id", principal.UserID,
		"roster_id", r.ID,
		"captain_id", r.CaptainID,
	)

	return s.materialize(ctx, r)
}

// GetMyTeam returns the caller's roster joined against the catalog.
func (s *RosterService) GetMyTeam(ctx context.Context, userID string) (roster.DisplayRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetMyTeam")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return roster.DisplayRoster{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	r, exists, err := s.rosterRepo.GetByUser(ctx, userID)
	if err != nil {
		return roster.DisplayRoster{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return roster.DisplayRoster{}, fmt.Errorf("%w: no team for user", ErrNotFound)
	}

	return s.materialize(ctx, r)
}

// SetPlayers replaces the whole selection of an existing roster. Only the
// owner may change it; the old selection survives any rejection.
func (s *RosterService) SetPlayers(ctx context.Context, principal user.Principal, rosterID string, sel roster.Selection) (roster.DisplayRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.SetPlayers")
	defer span.End()

	rosterID = strings.TrimSpace(rosterID)
	if rosterID == "" {
		return roster.DisplayRoster{}, fmt.Errorf("%w: roster id is required", ErrInvalidInput)
	}

	r, exists, err := s.rosterRepo.GetByID(ctx, rosterID)
	if err != nil {
		return roster.DisplayRoster{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return roster.DisplayRoster{}, fmt.Errorf("%w: roster=%s", ErrNotFound, rosterID)
	}
	if r.UserID != principal.UserID {
		return roster.DisplayRoster{}, fmt.Errorf("%w: roster belongs to another user", ErrUnauthorized)
	}

	if err := s.validateSelection(ctx, sel, principal.FullName); err != nil {
		return roster.DisplayRoster{}, err
	}

	if err := s.rosterRepo.ReplaceSelection(ctx, rosterID, sel); err != nil {
		return roster.DisplayRoster{}, fmt.Errorf("replace selection: %w", err)
	}

	r.CaptainID = sel.CaptainID
	r.Starters = sel.Starters
	r.BenchPlayerIDs = sel.BenchPlayerIDs
	r.UpdatedAt = s.now().UTC()

	s.logger.InfoContext(ctx, "team selection replaced",
		"user_id", principal.UserID,
		"roster_id", rosterID,
	)

	return s.materialize(ctx, r)
}

// GetTeamPoints breaks a roster's cumulative score down per starter.
func (s *RosterService) GetTeamPoints(ctx context.Context, rosterID string) (TeamPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetTeamPoints")
	defer span.End()

	rosterID = strings.TrimSpace(rosterID)
	if rosterID == "" {
		return TeamPoints{}, fmt.Errorf("%w: roster id is required", ErrInvalidInput)
	}

	r, exists, err := s.rosterRepo.GetByID(ctx, rosterID)
	if err != nil {
		return TeamPoints{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return TeamPoints{}, fmt.Errorf("%w: roster=%s", ErrNotFound, rosterID)
	}

	display, err := s.materialize(ctx, r)
	if err != nil {
		return TeamPoints{}, err
	}

	out := TeamPoints{
		RosterID:    r.ID,
		RosterName:  r.Name,
		TotalPoints: display.TotalPoints,
	}
	for _, st := range display.Starters {
		out.Starters = append(out.Starters, StarterPoints{
			Player:           st.Player,
			AssignedPosition: st.AssignedPosition,
			IsCaptain:        st.Player.ID == r.CaptainID,
			Points:           st.Player.TotalPoints,
		})
	}

	return out, nil
}

func (s *RosterService) validateSelection(ctx context.Context, sel roster.Selection, ownerFullName string) error {
	err := roster.ValidateSelection(ctx, playerCatalog{repo: s.playerRepo}, sel, ownerFullName)
	if err == nil {
		return nil
	}
	if isRosterRuleError(err) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return fmt.Errorf("validate selection: %w", err)
}

func isRosterRuleError(err error) bool {
	for _, target := range []error{
		roster.ErrRosterSize,
		roster.ErrDuplicatePlayer,
		roster.ErrCaptainNotStarter,
		roster.ErrUnknownPlayer,
		roster.ErrInvalidFormation,
		roster.ErrIneligiblePosition,
		roster.ErrCaptainNameConflict,
		roster.ErrMarqueeLimit,
		roster.ErrBudgetExceeded,
		roster.ErrBenchComposition,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func (s *RosterService) materialize(ctx context.Context, r roster.Roster) (roster.DisplayRoster, error) {
	ids := make([]string, 0, len(r.Starters)+len(r.BenchPlayerIDs))
	for _, a := range r.Starters {
		ids = append(ids, a.PlayerID)
	}
	ids = append(ids, r.BenchPlayerIDs...)

	players, err := playerCatalog{repo: s.playerRepo}.Resolve(ctx, ids)
	if err != nil {
		return roster.DisplayRoster{}, fmt.Errorf("resolve roster players: %w", err)
	}

	display := roster.DisplayRoster{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		CaptainID: r.CaptainID,
		CreatedAt: r.CreatedAt,
	}
	for _, a := range r.Starters {
		p, ok := players[a.PlayerID]
		if !ok {
			return roster.DisplayRoster{}, fmt.Errorf("resolve roster players: %w: %s", roster.ErrUnknownPlayer, a.PlayerID)
		}
		display.Starters = append(display.Starters, roster.DisplayStarter{
			Player:           p,
			AssignedPosition: a.Position,
		})
		display.TotalPoints += p.TotalPoints
	}
	for _, id := range r.BenchPlayerIDs {
		p, ok := players[id]
		if !ok {
			return roster.DisplayRoster{}, fmt.Errorf("resolve roster players: %w: %s", roster.ErrUnknownPlayer, id)
		}
		display.Bench = append(display.Bench, p)
	}

	return display, nil
}
