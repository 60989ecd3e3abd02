package player

import "context"

// Filter narrows player listings. Position matches either the primary or
// secondary position; Search is a case-insensitive name substring.
type Filter struct {
	Position Position
	Search   string
}

// Repository describes read-only catalog access. The catalog is owned by the
// data-loading side; nothing here mutates it.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
