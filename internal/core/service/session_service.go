package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

// SessionService opens sessions from tokens issued by the portal backend.
type SessionService struct {
	gateway ports.AuthGateway
	reader  ports.ClaimsReader
	log     zerolog.Logger
}

func NewSessionService(gateway ports.AuthGateway, reader ports.ClaimsReader, log zerolog.Logger) *SessionService {
	return &SessionService{gateway: gateway, reader: reader, log: log}
}

// Open wraps token into a session. Blank tokens mean no session.
func (s *SessionService) Open(token string) *domain.Session {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return &domain.Session{Token: token, Claims: s.reader.Read(token)}
}

func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	session := s.Open(token)
	if session == nil {
		return nil, fmt.Errorf("login: %w: empty token", domain.ErrBackendUnavailable)
	}

	s.log.Info().Str("username", username).Strs("roles", session.Roles().Strings()).Msg("session opened")
	return session, nil
}

func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, error) {
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.gateway.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	session := s.Open(token)
	if session == nil {
		return nil, fmt.Errorf("register: %w: empty token", domain.ErrBackendUnavailable)
	}

	s.log.Info().Str("username", in.Username).Str("role", in.Role).Msg("account registered")
	return session, nil
}
