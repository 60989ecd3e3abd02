package league

import "context"

type Repository interface {
	Create(ctx context.Context, l League) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, code string) (League, bool, error)
	AddMember(ctx context.Context, m Member) error
	IsMember(ctx context.Context, leagueID, userID string) (bool, error)
	ListMembers(ctx context.Context, leagueID string) ([]Member, error)
}
