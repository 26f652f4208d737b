package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

type PreferenceService struct {
	repo ports.PreferenceRepository
	// owners must authenticate the forwarded bearer token, as the portal
	// backend does.
	owners ports.UserDirectory
}

func NewPreferenceService(repo ports.PreferenceRepository, owners ports.UserDirectory) *PreferenceService {
	return &PreferenceService{repo: repo, owners: owners}
}

// Theme returns the stored mode, or the default when none (or garbage) was
// stored.
func (s *PreferenceService) Theme(ctx context.Context, session *domain.Session) (domain.ThemeMode, error) {
	owner, err := s.owner(ctx, session)
	if err != nil {
		return "", err
	}
	return s.theme(ctx, owner)
}

func (s *PreferenceService) SetTheme(ctx context.Context, session *domain.Session, mode domain.ThemeMode) error {
	if !mode.Valid() {
		return domain.ErrInvalidTheme
	}
	owner, err := s.owner(ctx, session)
	if err != nil {
		return err
	}
	return s.save(ctx, owner, mode)
}

func (s *PreferenceService) ToggleTheme(ctx context.Context, session *domain.Session) (domain.ThemeMode, error) {
	owner, err := s.owner(ctx, session)
	if err != nil {
		return "", err
	}
	current, err := s.theme(ctx, owner)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := s.save(ctx, owner, next); err != nil {
		return "", err
	}
	return next, nil
}

// owner asks the backend for the account named by the session, forwarding the
// session token. A token the backend rejects, or a name it does not know,
// means no session. Records are keyed by the backend's user ID.
func (s *PreferenceService) owner(ctx context.Context, session *domain.Session) (string, error) {
	name := session.DisplayName()
	if !session.Active() || name == "" || s.owners == nil {
		return "", domain.ErrNoSession
	}

	user, err := s.owners.FindByUsername(ctx, session.Token, name)
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNoSession):
		return "", domain.ErrNoSession
	case err != nil:
		return "", fmt.Errorf("resolve preference owner: %w", err)
	}
	if user == nil || user.ID == "" {
		return "", domain.ErrNoSession
	}
	return user.ID, nil
}

func (s *PreferenceService) theme(ctx context.Context, owner string) (domain.ThemeMode, error) {
	mode, err := s.repo.FindTheme(ctx, owner)
	if err != nil {
		return "", fmt.Errorf("find theme: %w", err)
	}
	if !mode.Valid() {
		return domain.DefaultTheme, nil
	}
	return mode, nil
}

func (s *PreferenceService) save(ctx context.Context, owner string, mode domain.ThemeMode) error {
	if err := s.repo.SaveTheme(ctx, owner, mode); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
