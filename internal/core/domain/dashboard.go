package domain

// DashboardView names the body mounted at /dashboard.
type DashboardView string

const (
	ViewPrograms              DashboardView = "programs"
	ViewExpertDashboard       DashboardView = "expert_dashboard"
	ViewMentorDashboard       DashboardView = "mentor_dashboard"
	ViewEntrepreneurDashboard DashboardView = "entrepreneur_dashboard"
	ViewInvestorDashboard     DashboardView = "investor_dashboard"
	ViewFeedback              DashboardView = "feedback"
	ViewAdminDashboard        DashboardView = "admin_dashboard"
	// ViewUnknownRole makes a misconfigured account visible instead of hiding it.
	ViewUnknownRole DashboardView = "unknown_role"
	// ViewWelcome is the neutral body shown when no role could be resolved.
	ViewWelcome DashboardView = "welcome"
)

// RoleSource records where the dashboard role came from.
type RoleSource string

const (
	RoleFromClaims    RoleSource = "claims"
	RoleFromDirectory RoleSource = "directory"
	RoleUnresolved    RoleSource = "none"
)

const (
	WelcomeTitle   = "Welcome"
	WelcomeMessage = "No role found in token."
)

type DashboardBody struct {
	View       DashboardView `json:"view"`
	Role       string        `json:"role,omitempty"`
	RoleSource RoleSource    `json:"role_source"`
	Title      string        `json:"title,omitempty"`
	Message    string        `json:"message,omitempty"`
}

// Shell is the full composition for one client path.
type Shell struct {
	Path      string         `json:"path"`
	View      string         `json:"view,omitempty"`
	Redirect  string         `json:"redirect,omitempty"`
	Chrome    *Chrome        `json:"chrome,omitempty"`
	Dashboard *DashboardBody `json:"dashboard,omitempty"`
}
