package service

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// ClaimsReader decodes the payload segment of a session token without
// verifying its signature. The result is advisory and only drives UI
// composition; the portal backend remains the sole enforcement point.
type ClaimsReader struct {
	parser *jwt.Parser
}

func NewClaimsReader() *ClaimsReader {
	return &ClaimsReader{
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
	}
}

// Read never fails: a missing or malformed token yields zero claims with an
// empty role list. Only the payload segment is decoded; the header and the
// signature are never looked at.
func (r *ClaimsReader) Read(token string) domain.Claims {
	empty := domain.Claims{Roles: []string{}}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return empty
	}
	raw, err := r.parser.DecodeSegment(parts[1])
	if err != nil {
		return empty
	}
	payload := jwt.MapClaims{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return empty
	}

	return domain.Claims{
		Subject:  stringClaim(payload, "sub"),
		Username: stringClaim(payload, "username"),
		Role:     roleClaim(payload),
		Roles:    extractRoles(payload),
	}
}

// extractRoles prefers "roles" (a list, or a single value wrapped) and falls
// back to the singular "role". Non-string entries are skipped.
func extractRoles(payload jwt.MapClaims) []string {
	if v, ok := payload["roles"]; ok && present(v) {
		return toStrings(v)
	}
	if v, ok := payload["role"]; ok && present(v) {
		return toStrings(v)
	}
	return []string{}
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	}
	return true
}

func toStrings(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case string:
		out = append(out, t)
	}
	return out
}

func stringClaim(payload jwt.MapClaims, key string) string {
	s, _ := payload[key].(string)
	return s
}

// roleClaim keeps a non-string "role" as its JSON text so the dashboard shows
// it as an unknown role instead of falling back to a directory lookup. Empty,
// false and zero values count as absent.
func roleClaim(payload jwt.MapClaims) string {
	switch v := payload["role"].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
	case float64:
		if v == 0 {
			return ""
		}
	}
	text, err := json.Marshal(payload["role"])
	if err != nil {
		return ""
	}
	return string(text)
}
