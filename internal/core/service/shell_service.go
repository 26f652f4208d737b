package service

import (
	"context"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

type ShellService struct {
	nav       ports.NavigationService
	dashboard ports.DashboardService
}

func NewShellService(nav ports.NavigationService, dashboard ports.DashboardService) *ShellService {
	return &ShellService{nav: nav, dashboard: dashboard}
}

// Compose gates path first; a redirected shell carries no chrome. The
// dashboard body is only resolved for /dashboard itself.
func (s *ShellService) Compose(ctx context.Context, session *domain.Session, path string) domain.Shell {
	p := domain.CleanPath(path)
	shell := domain.Shell{Path: p}

	if gate := s.nav.Gate(session, p); !gate.Allowed {
		shell.Redirect = gate.Redirect
		return shell
	}

	if route, ok := domain.MatchRoute(p); ok {
		shell.View = route.View
	}
	chrome := s.nav.ChromeFor(session, p)
	shell.Chrome = &chrome

	if p == domain.PathDashboard {
		body := s.dashboard.Resolve(ctx, session)
		shell.Dashboard = &body
	}
	return shell
}
