package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideaforge/portal-shell/internal/api/handler"
	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
	"github.com/ideaforge/portal-shell/internal/core/service"
)

type noopGateway struct{}

func (noopGateway) Login(context.Context, string, string) (string, error) {
	return "", domain.ErrInvalidCredentials
}

func (noopGateway) Register(context.Context, ports.RegisterInput) (string, error) {
	return "", domain.ErrUserExists
}

type memoryPreferences struct{ modes map[string]domain.ThemeMode }

func (m *memoryPreferences) FindTheme(_ context.Context, owner string) (domain.ThemeMode, error) {
	return m.modes[owner], nil
}

func (m *memoryPreferences) SaveTheme(_ context.Context, owner string, mode domain.ThemeMode) error {
	m.modes[owner] = mode
	return nil
}

const backendKey = "backend-secret"

// verifyingDirectory stands in for the portal backend: it checks the bearer's
// signature before answering, and only for the account the token names.
type verifyingDirectory struct{}

func (verifyingDirectory) FindByUsername(_ context.Context, bearer, username string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(bearer, claims, func(*jwt.Token) (any, error) {
		return []byte(backendKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, domain.ErrNoSession
	}
	return &domain.User{ID: "id-" + username, Username: username}, nil
}

type countingDispatcher struct{ n int }

func (d *countingDispatcher) Enqueue(domain.ConnectionSignal) error {
	d.n++
	return nil
}

func newTestRouter(t *testing.T) (http.Handler, *countingDispatcher) {
	h, dispatcher, _ := newTestRouterWithStore(t)
	return h, dispatcher
}

func newTestRouterWithStore(t *testing.T) (http.Handler, *countingDispatcher, *memoryPreferences) {
	t.Helper()
	log := zerolog.Nop()
	nav := service.NewNavigationService(nil)
	dispatcher := &countingDispatcher{}
	prefs := &memoryPreferences{modes: map[string]domain.ThemeMode{}}

	e := NewRouter(Dependencies{
		Sessions:     service.NewSessionService(noopGateway{}, service.NewClaimsReader(), log),
		Shell:        service.NewShellService(nav, service.NewDashboardService(nil, log)),
		Preferences:  service.NewPreferenceService(prefs, verifyingDirectory{}),
		Dispatcher:   dispatcher,
		HealthChecks: map[string]handler.Check{"noop": func(context.Context) error { return nil }},
		Cookie:       handler.CookieConfig{Name: "jwt"},
		Log:          log,
		Registry:     prometheus.NewRegistry(),
	})
	return e, dispatcher, prefs
}

func token(t *testing.T, claims jwt.MapClaims) string {
	return tokenSignedWith(t, backendKey, claims)
}

func tokenSignedWith(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func do(h http.Handler, method, target, bearer, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_GatedPagesRedirectAnonymous(t *testing.T) {
	h, _ := newTestRouter(t)

	paths := []string{"/no-such-page", "/dashboard/unknown"}
	for _, route := range domain.Routes {
		if route.Gated {
			paths = append(paths, strings.ReplaceAll(route.Path, ":ideaId", "9"))
		}
	}
	require.Greater(t, len(paths), 20)

	for _, path := range paths {
		rec := do(h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestRouter_OpenPathsNeverRedirect(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, path := range []string{"/", "/login", "/register"} {
		rec := do(h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_OpenPages(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var shell domain.Shell
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shell))
	assert.Equal(t, "home", shell.View)
	require.NotNil(t, shell.Chrome)
	assert.Equal(t, domain.HeaderTopNav, shell.Chrome.Header)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_UnknownPathWithSessionGoesHome(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodGet, "/no-such-page", token(t, jwt.MapClaims{"sub": "a"}), "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouter_AdminDashboard(t *testing.T) {
	h, _ := newTestRouter(t)
	tok := token(t, jwt.MapClaims{"sub": "root", "role": "ADMIN"})

	rec := do(h, http.MethodGet, "/dashboard", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var shell domain.Shell
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shell))
	require.NotNil(t, shell.Dashboard)
	assert.Equal(t, domain.ViewAdminDashboard, shell.Dashboard.View)
	assert.Nil(t, shell.Chrome.Sidebar)
	assert.False(t, shell.Chrome.Footer)
}

func TestRouter_CookieSession(t *testing.T) {
	h, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token(t, jwt.MapClaims{"sub": "ana", "roles": []any{"MENTOR"}})})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roles":["MENTOR"]`)
	assert.Contains(t, rec.Body.String(), `"active":true`)
}

func TestRouter_APIRequiresSession(t *testing.T) {
	h, dispatcher := newTestRouter(t)

	rec := do(h, http.MethodGet, "/api/preferences/theme", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"no active session"}`, rec.Body.String())

	tok := token(t, jwt.MapClaims{"sub": "ana"})
	rec = do(h, http.MethodPost, "/api/preferences/theme/toggle", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mode":"dark"}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/api/signals/mentor-connection", tok, `{"id":5,"status":"ACCEPTED","ts":1}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, dispatcher.n)
}

func TestRouter_LoginFailureEnvelope(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodPost, "/session/login", "", `{"username":"a","password":"b"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health/ready", "", "").Code)

	rec := do(h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ForgedTokenCannotWriteAnotherOwnersPreference(t *testing.T) {
	h, _, prefs := newTestRouterWithStore(t)
	forged := tokenSignedWith(t, "attacker-key", jwt.MapClaims{"username": "victim"})

	rec := do(h, http.MethodPut, "/api/preferences/theme", forged, `{"mode":"dark"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, prefs.modes)

	rec = do(h, http.MethodPost, "/api/preferences/theme/toggle", forged, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, prefs.modes)

	victim := token(t, jwt.MapClaims{"username": "victim"})
	rec = do(h, http.MethodGet, "/api/preferences/theme", victim, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mode":"light"}`, rec.Body.String())
}

func TestRouter_PreferencesKeyedByBackendUser(t *testing.T) {
	h, _, prefs := newTestRouterWithStore(t)
	ana := token(t, jwt.MapClaims{"sub": "ana"})

	rec := do(h, http.MethodPut, "/api/preferences/theme", ana, `{"mode":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]domain.ThemeMode{"id-ana": domain.ThemeDark}, prefs.modes)
}
