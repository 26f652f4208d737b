package ports

import (
	"context"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

type SessionService interface {
	// Open wraps a raw token into a session. An empty token yields nil.
	Open(token string) *domain.Session
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Register(ctx context.Context, in RegisterInput) (*domain.Session, error)
}
