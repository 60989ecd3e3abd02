package roster

import "context"

// Repository persists rosters. ReplaceSelection swaps the full selection in
// one transaction so a failed update never leaves a partial squad behind.
type Repository interface {
	Create(ctx context.Context, r Roster, sel Selection) error
	GetByID(ctx context.Context, rosterID string) (Roster, bool, error)
	GetByUser(ctx context.Context, userID string) (Roster, bool, error)
	GetByUsers(ctx context.Context, userIDs []string) ([]Roster, error)
	ReplaceSelection(ctx context.Context, rosterID string, sel Selection) error
}
