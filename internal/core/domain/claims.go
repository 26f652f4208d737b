package domain

// Claims is the decoded payload of a session token. It is read without any
// signature verification and must only drive UI composition.
type Claims struct {
	Subject  string `json:"sub,omitempty"`
	Username string `json:"username,omitempty"`
	// Role is the explicit singular "role" field, verbatim.
	Role string `json:"role,omitempty"`
	// Roles is the result of the role extraction policy, verbatim.
	Roles []string `json:"roles"`
}

// DisplayName prefers the username claim and falls back to the subject.
func (c Claims) DisplayName() string {
	if c.Username != "" {
		return c.Username
	}
	return c.Subject
}

func (c Claims) RoleSet() RoleSet {
	return NewRoleSet(c.Roles...)
}

// Session is the per-request view of the client's session token. A session is
// active as soon as a token is present, even if the token cannot be decoded.
type Session struct {
	Token  string
	Claims Claims
}

func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

// Roles returns the session role set; an absent session has no roles.
func (s *Session) Roles() RoleSet {
	if s == nil {
		return RoleSet{}
	}
	return s.Claims.RoleSet()
}

func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	return s.Claims.DisplayName()
}
