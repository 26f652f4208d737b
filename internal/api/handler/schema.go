package handler

import "github.com/ideaforge/portal-shell/internal/core/domain"

type errorResponse struct {
	Error string `json:"error"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,portal_role"`
}

type adoptRequest struct {
	Token string `json:"token" validate:"required"`
}

// sessionResponse is the claims view of the current session. Token is only
// echoed back right after login or registration.
type sessionResponse struct {
	Active      bool     `json:"active"`
	Token       string   `json:"token,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	Roles       []string `json:"roles"`
}

func toSessionResponse(s *domain.Session, withToken bool) sessionResponse {
	resp := sessionResponse{Roles: s.Roles().Strings()}
	if !s.Active() {
		return resp
	}
	resp.Active = true
	resp.Subject = s.Claims.Subject
	resp.DisplayName = s.DisplayName()
	if withToken {
		resp.Token = s.Token
	}
	return resp
}

type signalRequest struct {
	ID     int64  `json:"id"     validate:"required,gt=0"`
	Status string `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
	// TS is Unix milliseconds; zero means now.
	TS int64 `json:"ts" validate:"gte=0"`
}

type themeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=light dark"`
}

type themeResponse struct {
	Mode domain.ThemeMode `json:"mode"`
}
