package service

import (
	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// NavigationService decides the chrome around a page from the session roles
// and the current path. Every decision is cosmetic: a hidden link or a login
// redirect is never an authorization boundary.
type NavigationService struct {
	catalog *domain.NavigationCatalog
}

// NewNavigationService uses the embedded catalog when catalog is nil.
func NewNavigationService(catalog *domain.NavigationCatalog) *NavigationService {
	if catalog == nil {
		catalog = domain.DefaultNavigationCatalog()
	}
	return &NavigationService{catalog: catalog}
}

// SidebarFor picks the side navigation; the first matching role wins:
// admin, expert, entrepreneur, investor, mentor, program organizer. Experts
// and program organizers get no sidebar (nil).
func (s *NavigationService) SidebarFor(roles domain.RoleSet) *domain.Sidebar {
	switch {
	case roles.Has(domain.RoleAdmin):
		return s.catalog.Sidebar(domain.SidebarAdmin)
	case roles.Has(domain.RoleExpert):
		return nil
	case roles.Has(domain.RoleEntrepreneur):
		return s.catalog.Sidebar(domain.SidebarEntrepreneur)
	case roles.Has(domain.RoleInvestor):
		return s.catalog.Sidebar(domain.SidebarInvestor)
	case roles.Has(domain.RoleMentor):
		return s.catalog.Sidebar(domain.SidebarMentor)
	case roles.Has(domain.RoleProgramOrganizer):
		return nil
	default:
		return s.catalog.Sidebar(domain.SidebarDefault)
	}
}

// ChromeFor composes header, sidebar, background decor and footer for path.
//
//   - "/" gets the marketing top bar and no sidebar.
//   - The admin dashboard drops both sidebar and footer for a full-width view.
//   - Entrepreneurs get the animated background under /dashboard.
func (s *NavigationService) ChromeFor(session *domain.Session, path string) domain.Chrome {
	p := domain.CleanPath(path)
	roles := session.Roles()
	adminDashboard := p == domain.PathDashboard && roles.Has(domain.RoleAdmin)

	chrome := domain.Chrome{
		Header:          domain.HeaderCompact,
		ThemeToggle:     true,
		Account:         s.accountMenu(session),
		BackgroundDecor: roles.Has(domain.RoleEntrepreneur) && domain.InDashboardSubtree(p),
		Footer:          !adminDashboard,
	}

	if p == domain.PathHome {
		chrome.Header = domain.HeaderTopNav
		chrome.Anchors = s.catalog.AnchorItems()
		return chrome
	}
	if !adminDashboard {
		chrome.Sidebar = s.SidebarFor(roles)
	}
	return chrome
}

// Gate lets open paths through, sends anonymous visitors of any other path to
// the login page and unknown paths to home.
func (s *NavigationService) Gate(session *domain.Session, path string) domain.GateDecision {
	p := domain.CleanPath(path)
	if domain.IsOpenPath(p) {
		return domain.GateDecision{Allowed: true}
	}
	if !session.Active() {
		return domain.GateDecision{Redirect: domain.PathLogin}
	}
	if _, ok := domain.MatchRoute(p); !ok {
		return domain.GateDecision{Redirect: domain.PathHome}
	}
	return domain.GateDecision{Allowed: true}
}

func (s *NavigationService) accountMenu(session *domain.Session) *domain.AccountMenu {
	if !session.Active() {
		return &domain.AccountMenu{Items: s.catalog.GuestItems()}
	}
	return &domain.AccountMenu{
		Authenticated: true,
		DisplayName:   session.DisplayName(),
		Items:         s.catalog.AccountItems(),
	}
}
