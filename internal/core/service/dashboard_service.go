package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

// DashboardService resolves the body shown at /dashboard.
type DashboardService struct {
	directory ports.UserDirectory
	log       zerolog.Logger
}

// NewDashboardService accepts a nil directory, in which case tokens without an
// explicit role resolve to the welcome body.
func NewDashboardService(directory ports.UserDirectory, log zerolog.Logger) *DashboardService {
	return &DashboardService{directory: directory, log: log}
}

// Resolve reads the explicit role claim, falling back to one directory lookup
// by subject. It never fails: an unresolvable role yields the welcome body and
// an unrecognized one an "Unknown role" message. Roles match exactly, so
// "admin" is reported as unknown rather than mounting the admin dashboard.
//
// The lookup is bound to ctx, so a caller whose session changes issues a new
// request and the old lookup is cancelled with the old request.
func (s *DashboardService) Resolve(ctx context.Context, session *domain.Session) domain.DashboardBody {
	role, source := s.resolveRole(ctx, session)
	if role == "" {
		return domain.DashboardBody{
			View:       domain.ViewWelcome,
			RoleSource: domain.RoleUnresolved,
			Title:      domain.WelcomeTitle,
			Message:    domain.WelcomeMessage,
		}
	}

	body := domain.DashboardBody{Role: role, RoleSource: source}
	parsed, _ := domain.ParseRole(role)
	switch parsed {
	case domain.RoleProgramOrganizer:
		body.View = domain.ViewPrograms
	case domain.RoleExpert:
		body.View = domain.ViewExpertDashboard
	case domain.RoleMentor:
		body.View = domain.ViewMentorDashboard
	case domain.RoleEntrepreneur:
		body.View = domain.ViewEntrepreneurDashboard
	case domain.RoleInvestor:
		body.View = domain.ViewInvestorDashboard
	case domain.RoleValidator:
		body.View = domain.ViewFeedback
	case domain.RoleAdmin:
		body.View = domain.ViewAdminDashboard
	default:
		body.View = domain.ViewUnknownRole
		body.Message = "Unknown role: " + role
	}
	return body
}

func (s *DashboardService) resolveRole(ctx context.Context, session *domain.Session) (string, domain.RoleSource) {
	if !session.Active() {
		return "", domain.RoleUnresolved
	}
	claims := session.Claims
	if claims.Role != "" {
		return claims.Role, domain.RoleFromClaims
	}
	if claims.Subject == "" || s.directory == nil {
		return "", domain.RoleUnresolved
	}

	user, err := s.directory.FindByUsername(ctx, session.Token, claims.Subject)
	if err != nil {
		s.log.Warn().Err(err).Str("subject", claims.Subject).Msg("role lookup failed")
		return "", domain.RoleUnresolved
	}
	if user == nil || user.Role == "" {
		return "", domain.RoleUnresolved
	}
	return user.Role, domain.RoleFromDirectory
}
