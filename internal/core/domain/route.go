package domain

import "strings"

const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
)

// Route maps a client path to the view mounted for it. Gated routes need an
// active session before the view mounts; the check is a UI affordance and
// never an authorization decision.
type Route struct {
	Path  string `json:"path"`
	View  string `json:"view"`
	Gated bool   `json:"gated"`
}

// Routes is the client route table. Segments starting with ':' match any
// single non-empty segment.
var Routes = []Route{
	{Path: PathHome, View: "home"},
	{Path: PathLogin, View: "login"},
	{Path: PathRegister, View: "register"},
	{Path: PathDashboard, View: "dashboard", Gated: true},
	{Path: "/ideas", View: "ideas", Gated: true},
	{Path: "/settings", View: "settings", Gated: true},
	{Path: "/programs", View: "programs", Gated: true},
	{Path: "/expert-dashboard", View: "expert_dashboard", Gated: true},
	{Path: "/expert/evaluations", View: "expert_evaluations", Gated: true},
	{Path: "/idea-evaluation/:ideaId", View: "idea_evaluation", Gated: true},
	{Path: "/requests", View: "received_requests", Gated: true},
	{Path: "/investors", View: "investor_interests", Gated: true},
	{Path: "/investor-dashboard", View: "investor_dashboard", Gated: true},
	{Path: "/my-investor-interests", View: "my_investor_interests", Gated: true},
	{Path: "/investment-opportunities", View: "investment_opportunities", Gated: true},
	{Path: "/program-organizer-dashboard", View: "program_organizer_dashboard", Gated: true},
	{Path: "/dashboard/mentor-requests", View: "entrepreneur_mentor_requests", Gated: true},
	{Path: "/mentor", View: "mentor", Gated: true},
	{Path: "/create-program", View: "create_program", Gated: true},
	{Path: "/all-programs", View: "all_programs", Gated: true},
	{Path: "/validation", View: "validation", Gated: true},
	{Path: "/feedback", View: "feedback", Gated: true},
	{Path: "/users", View: "users", Gated: true},
}

// CleanPath strips the query string and a trailing slash; an empty path is
// the home path.
func CleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return PathHome
		}
	}
	return path
}

// IsOpenPath reports whether path can be shown without a session.
func IsOpenPath(path string) bool {
	switch CleanPath(path) {
	case PathHome, PathLogin, PathRegister:
		return true
	}
	return false
}

// InDashboardSubtree reports whether path is /dashboard or below it.
func InDashboardSubtree(path string) bool {
	p := CleanPath(path)
	return p == PathDashboard || strings.HasPrefix(p, PathDashboard+"/")
}

// MatchRoute finds the route serving path.
func MatchRoute(path string) (Route, bool) {
	segs := splitPath(CleanPath(path))
	for _, r := range Routes {
		if matchSegments(splitPath(r.Path), segs) {
			return r, true
		}
	}
	return Route{}, false
}

// GateDecision is the outcome of the route gate. Redirect is set only when
// Allowed is false.
type GateDecision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}
