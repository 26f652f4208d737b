package ports

import "github.com/ideaforge/portal-shell/internal/core/domain"

// ClaimsReader decodes a session token into claims. Implementations never
// fail: an unreadable token yields zero Claims.
type ClaimsReader interface {
	Read(token string) domain.Claims
}
