package service

import (
	"context"
	"testing"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

func newShellSvc(dir *stubDirectory) *ShellService {
	return NewShellService(NewNavigationService(nil), newDashboardSvc(dir))
}

func TestShellService_Compose_RedirectCarriesNoChrome(t *testing.T) {
	shell := newShellSvc(&stubDirectory{}).Compose(context.Background(), nil, "/dashboard")

	if shell.Redirect != domain.PathLogin {
		t.Fatalf("expected redirect to login, got %q", shell.Redirect)
	}
	if shell.Chrome != nil || shell.Dashboard != nil {
		t.Errorf("expected bare redirect, got %+v", shell)
	}
}

func TestShellService_Compose_Dashboard(t *testing.T) {
	session := &domain.Session{Token: "t", Claims: domain.Claims{Role: "ENTREPRENEUR", Roles: []string{"ENTREPRENEUR"}}}

	shell := newShellSvc(&stubDirectory{}).Compose(context.Background(), session, "/dashboard?tab=1")

	if shell.Path != domain.PathDashboard || shell.View != "dashboard" {
		t.Errorf("unexpected path/view: %q %q", shell.Path, shell.View)
	}
	if shell.Chrome == nil || shell.Chrome.Sidebar == nil || shell.Chrome.Sidebar.Variant != domain.SidebarEntrepreneur {
		t.Fatalf("expected entrepreneur sidebar, got %+v", shell.Chrome)
	}
	if !shell.Chrome.BackgroundDecor {
		t.Errorf("expected background decor")
	}
	if shell.Dashboard == nil || shell.Dashboard.View != domain.ViewEntrepreneurDashboard {
		t.Errorf("expected entrepreneur dashboard body, got %+v", shell.Dashboard)
	}
}

func TestShellService_Compose_NoDashboardBodyElsewhere(t *testing.T) {
	dir := &stubDirectory{}
	session := &domain.Session{Token: "t", Claims: domain.Claims{Subject: "x"}}

	shell := newShellSvc(dir).Compose(context.Background(), session, "/dashboard/mentor-requests")

	if shell.Dashboard != nil {
		t.Errorf("expected no dashboard body under subtree, got %+v", shell.Dashboard)
	}
	if shell.View != "entrepreneur_mentor_requests" {
		t.Errorf("unexpected view %q", shell.View)
	}
	if dir.calls != 0 {
		t.Errorf("expected no directory lookup, got %d", dir.calls)
	}
}

func TestShellService_Compose_HomeAnonymous(t *testing.T) {
	shell := newShellSvc(nil).Compose(context.Background(), nil, "")

	if shell.Path != domain.PathHome || shell.Redirect != "" {
		t.Fatalf("unexpected shell %+v", shell)
	}
	if shell.Chrome == nil || shell.Chrome.Header != domain.HeaderTopNav {
		t.Errorf("expected top nav chrome, got %+v", shell.Chrome)
	}
}
