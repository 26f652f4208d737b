package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

type stubPreferenceService struct {
	modes map[string]domain.ThemeMode
	err   error
}

func (s *stubPreferenceService) Theme(_ context.Context, session *domain.Session) (domain.ThemeMode, error) {
	if s.err != nil {
		return "", s.err
	}
	if m, ok := s.modes[session.DisplayName()]; ok {
		return m, nil
	}
	return domain.DefaultTheme, nil
}

func (s *stubPreferenceService) SetTheme(_ context.Context, session *domain.Session, mode domain.ThemeMode) error {
	if !mode.Valid() {
		return domain.ErrInvalidTheme
	}
	if s.err != nil {
		return s.err
	}
	s.modes[session.DisplayName()] = mode
	return nil
}

func (s *stubPreferenceService) ToggleTheme(ctx context.Context, session *domain.Session) (domain.ThemeMode, error) {
	m, _ := s.Theme(ctx, session)
	s.modes[session.DisplayName()] = m.Toggle()
	return s.modes[session.DisplayName()], nil
}

func decodeTheme(t *testing.T, body []byte) domain.ThemeMode {
	t.Helper()
	var resp themeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp.Mode
}

func TestPreferenceHandler_RequiresSession(t *testing.T) {
	e := newEcho()
	h := NewPreferenceHandler(&stubPreferenceService{modes: map[string]domain.ThemeMode{}})

	c, rec := newContext(e, http.MethodGet, "/api/preferences/theme", nil, nil)
	serve(e, c, h.GetTheme)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	c, rec = newContext(e, http.MethodPost, "/api/preferences/theme/toggle", nil, &domain.Session{Token: "opaque"})
	serve(e, c, h.ToggleTheme)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a session without identity, got %d", rec.Code)
	}
}

func TestPreferenceHandler_Flow(t *testing.T) {
	e := newEcho()
	svc := &stubPreferenceService{modes: map[string]domain.ThemeMode{}}
	h := NewPreferenceHandler(svc)
	session := activeSession("alice")

	c, rec := newContext(e, http.MethodGet, "/api/preferences/theme", nil, session)
	serve(e, c, h.GetTheme)
	if got := decodeTheme(t, rec.Body.Bytes()); got != domain.ThemeLight {
		t.Fatalf("expected light by default, got %s", got)
	}

	c, rec = newContext(e, http.MethodPut, "/api/preferences/theme", strings.NewReader(`{"mode":"dark"}`), session)
	serve(e, c, h.PutTheme)
	if rec.Code != http.StatusOK || svc.modes["alice"] != domain.ThemeDark {
		t.Fatalf("expected dark stored, got %d %s", rec.Code, svc.modes["alice"])
	}

	c, rec = newContext(e, http.MethodPost, "/api/preferences/theme/toggle", nil, session)
	serve(e, c, h.ToggleTheme)
	if got := decodeTheme(t, rec.Body.Bytes()); got != domain.ThemeLight {
		t.Fatalf("expected light after toggle, got %s", got)
	}

	c, rec = newContext(e, http.MethodPut, "/api/preferences/theme", strings.NewReader(`{"mode":"sepia"}`), session)
	serve(e, c, h.PutTheme)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestPreferenceHandler_RejectedOwner(t *testing.T) {
	e := newEcho()
	h := NewPreferenceHandler(&stubPreferenceService{modes: map[string]domain.ThemeMode{}, err: domain.ErrNoSession})

	c, rec := newContext(e, http.MethodPut, "/api/preferences/theme", strings.NewReader(`{"mode":"dark"}`), activeSession("victim"))
	serve(e, c, h.PutTheme)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when the backend rejects the owner, got %d", rec.Code)
	}
}
