package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SidebarVariant identifies which side navigation the client mounts. The
// absence of a sidebar is expressed as a nil *Sidebar, not as a variant.
type SidebarVariant string

const (
	SidebarAdmin        SidebarVariant = "admin"
	SidebarEntrepreneur SidebarVariant = "entrepreneur"
	SidebarInvestor     SidebarVariant = "investor"
	SidebarMentor       SidebarVariant = "mentor"
	SidebarDefault      SidebarVariant = "default"
)

var sidebarVariants = []SidebarVariant{
	SidebarAdmin, SidebarEntrepreneur, SidebarInvestor, SidebarMentor, SidebarDefault,
}

// HeaderKind selects the top-of-page chrome.
type HeaderKind string

const (
	// HeaderTopNav is the marketing bar with smooth-scroll anchors.
	HeaderTopNav HeaderKind = "top_nav"
	// HeaderCompact carries the theme toggle and the account menu.
	HeaderCompact HeaderKind = "compact"
)

type NavItem struct {
	Label string `json:"label" yaml:"label"`
	To    string `json:"to"    yaml:"to"`
}

type Sidebar struct {
	Variant SidebarVariant `json:"variant"`
	Items   []NavItem      `json:"items"`
}

// AccountMenu is the menu behind the avatar, or the Login/Register buttons for
// anonymous visitors.
type AccountMenu struct {
	Authenticated bool      `json:"authenticated"`
	DisplayName   string    `json:"display_name,omitempty"`
	Items         []NavItem `json:"items"`
}

// Chrome is everything around the page body.
type Chrome struct {
	Header          HeaderKind   `json:"header"`
	Anchors         []NavItem    `json:"anchors,omitempty"`
	ThemeToggle     bool         `json:"theme_toggle"`
	Account         *AccountMenu `json:"account"`
	Sidebar         *Sidebar     `json:"sidebar"`
	BackgroundDecor bool         `json:"background_decor"`
	Footer          bool         `json:"footer"`
}

// NavigationCatalog holds the menu contents rendered by the chrome.
type NavigationCatalog struct {
	TopNav   []NavItem                    `yaml:"top_nav"`
	Account  []NavItem                    `yaml:"account_menu"`
	Guest    []NavItem                    `yaml:"guest_menu"`
	Sidebars map[SidebarVariant][]NavItem `yaml:"sidebars"`
}

//go:embed navigation.yaml
var navigationYAML []byte

// LoadNavigationCatalog parses a YAML catalog and checks every sidebar variant
// is present.
func LoadNavigationCatalog(data []byte) (*NavigationCatalog, error) {
	var c NavigationCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse navigation catalog: %w", err)
	}
	for _, v := range sidebarVariants {
		if len(c.Sidebars[v]) == 0 {
			return nil, fmt.Errorf("navigation catalog: sidebar %q has no items", v)
		}
	}
	return &c, nil
}

// DefaultNavigationCatalog returns the catalog embedded in the binary.
func DefaultNavigationCatalog() *NavigationCatalog {
	c, err := LoadNavigationCatalog(navigationYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Sidebar returns a copy of the items for variant so callers may not mutate the
// catalog.
func (c *NavigationCatalog) Sidebar(variant SidebarVariant) *Sidebar {
	return &Sidebar{Variant: variant, Items: cloneItems(c.Sidebars[variant])}
}

func (c *NavigationCatalog) AnchorItems() []NavItem  { return cloneItems(c.TopNav) }
func (c *NavigationCatalog) AccountItems() []NavItem { return cloneItems(c.Account) }
func (c *NavigationCatalog) GuestItems() []NavItem   { return cloneItems(c.Guest) }

func cloneItems(items []NavItem) []NavItem {
	out := make([]NavItem, len(items))
	copy(out, items)
	return out
}
