package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// signToken builds a token with the given payload. The key is irrelevant since
// signatures are never verified.
func signToken(t *testing.T, payload jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte("unused"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func sessionWithRoles(roles ...string) *domain.Session {
	return &domain.Session{
		Token:  "t",
		Claims: domain.Claims{Subject: "alice", Roles: roles},
	}
}

type stubDirectory struct {
	users   map[string]*domain.User
	err     error
	calls   int
	bearers []string
}

func (d *stubDirectory) FindByUsername(_ context.Context, bearer, username string) (*domain.User, error) {
	d.calls++
	d.bearers = append(d.bearers, bearer)
	if d.err != nil {
		return nil, d.err
	}
	u, ok := d.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}
