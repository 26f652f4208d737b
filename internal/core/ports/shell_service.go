package ports

import (
	"context"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// NavigationService holds the pure role-to-view decisions.
type NavigationService interface {
	SidebarFor(roles domain.RoleSet) *domain.Sidebar
	ChromeFor(session *domain.Session, path string) domain.Chrome
	Gate(session *domain.Session, path string) domain.GateDecision
}

// DashboardService picks the body mounted at /dashboard. It may perform one
// directory lookup and never returns an error.
type DashboardService interface {
	Resolve(ctx context.Context, session *domain.Session) domain.DashboardBody
}

// ShellService composes gate, chrome and dashboard body for one path.
type ShellService interface {
	Compose(ctx context.Context, session *domain.Session, path string) domain.Shell
}
