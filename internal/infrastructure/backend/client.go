package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the portal backend, which owns accounts and credentials.
// It implements ports.UserDirectory and ports.AuthGateway. Requests are never
// retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for baseURL. A non-positive timeout falls back to
// ten seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type userResponse struct {
	ID       json.RawMessage `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     string          `json:"role"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// FindByUsername fetches a user record, forwarding bearer as the caller's
// credentials. A bearer the backend rejects yields ErrNoSession.
func (c *Client) FindByUsername(ctx context.Context, bearer, username string) (*domain.User, error) {
	path := "/api/users/username/" + url.PathEscape(username)
	resp, err := c.do(ctx, http.MethodGet, path, bearer, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, domain.ErrUserNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.ErrNoSession
	}
	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}

	var ur userResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, fmt.Errorf("find user %q: decode response: %w", username, err)
	}
	return &domain.User{
		ID:       strings.Trim(string(ur.ID), `"`),
		Username: ur.Username,
		Email:    ur.Email,
		Role:     ur.Role,
	}, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return "", domain.ErrInvalidCredentials
	}
	return decodeToken(resp, "login")
}

// Register creates an account and returns its first session token.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	body := registerRequest{Username: in.Username, Email: in.Email, Password: in.Password, Role: in.Role}
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusConflict:
		return "", domain.ErrUserExists
	case http.StatusBadRequest:
		return "", domain.ErrInvalidCredentials
	}
	return decodeToken(resp, "register")
}

// Ping reports whether the backend answers at all. Any response below 500
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodHead, "/", "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	return resp, nil
}

func decodeToken(resp *http.Response, op string) (string, error) {
	if err := checkStatus(resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if tr.Token == "" {
		return "", fmt.Errorf("%s: %w: response carried no token", op, domain.ErrBackendUnavailable)
	}
	return tr.Token, nil
}

// checkStatus maps 5xx to ErrBackendUnavailable and any other non-2xx to a
// plain error carrying the backend's message.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return fmt.Errorf("backend responded %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}
