package ports

import (
	"context"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// UserDirectory looks up portal accounts by username. The bearer token of the
// current session is forwarded for backends that require it.
type UserDirectory interface {
	FindByUsername(ctx context.Context, bearer, username string) (*domain.User, error)
}
