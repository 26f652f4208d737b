package domain

import (
	"strings"
	"testing"
)

func TestDefaultNavigationCatalog_SidebarLinksAreRoutes(t *testing.T) {
	c := DefaultNavigationCatalog()
	for variant, items := range c.Sidebars {
		for _, item := range items {
			if _, ok := MatchRoute(item.To); !ok {
				t.Errorf("sidebar %s links to unknown route %s", variant, item.To)
			}
		}
	}
	for _, item := range c.AnchorItems() {
		if !strings.HasPrefix(item.To, "#") {
			t.Errorf("top nav item %q is not an anchor", item.To)
		}
	}
}

func TestDefaultNavigationCatalog_Contents(t *testing.T) {
	c := DefaultNavigationCatalog()

	admin := c.Sidebar(SidebarAdmin)
	if admin.Variant != SidebarAdmin {
		t.Errorf("unexpected variant %s", admin.Variant)
	}
	if !hasLink(admin.Items, "/users") {
		t.Errorf("expected admin sidebar to link to /users")
	}
	if !hasLink(c.Sidebar(SidebarEntrepreneur).Items, "/dashboard/mentor-requests") {
		t.Errorf("expected entrepreneur sidebar to link to mentor requests")
	}
	if hasLink(c.Sidebar(SidebarInvestor).Items, PathDashboard) {
		t.Errorf("investor sidebar should use the investor dashboard")
	}
	if !hasLink(c.GuestItems(), PathLogin) || !hasLink(c.GuestItems(), PathRegister) {
		t.Errorf("expected login and register in guest menu")
	}
}

func TestLoadNavigationCatalog_MissingVariant(t *testing.T) {
	data := []byte(`
sidebars:
  default:
    - { label: Home, to: / }
`)
	if _, err := LoadNavigationCatalog(data); err == nil {
		t.Fatal("expected error for catalog without all variants")
	}
	if _, err := LoadNavigationCatalog([]byte("sidebars: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func hasLink(items []NavItem, to string) bool {
	for _, it := range items {
		if it.To == to {
			return true
		}
	}
	return false
}
