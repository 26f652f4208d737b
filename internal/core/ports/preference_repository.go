package ports

import (
	"context"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// PreferenceRepository persists per-user client preferences. FindTheme
// returns ("", nil) when nothing was stored yet.
type PreferenceRepository interface {
	FindTheme(ctx context.Context, owner string) (domain.ThemeMode, error)
	SaveTheme(ctx context.Context, owner string, mode domain.ThemeMode) error
}

// PreferenceService reads and writes the preferences of the session's owner.
// The owner is confirmed by the portal backend; claims alone never select
// whose record is touched.
type PreferenceService interface {
	Theme(ctx context.Context, session *domain.Session) (domain.ThemeMode, error)
	SetTheme(ctx context.Context, session *domain.Session, mode domain.ThemeMode) error
	ToggleTheme(ctx context.Context, session *domain.Session) (domain.ThemeMode, error)
}
