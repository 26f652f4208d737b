package domain

import "strings"

// Role is an access-role tag carried by a session token. The set of values is
// open: unrecognized tags are kept so they can be surfaced to the user.
type Role string

const (
	RoleEntrepreneur     Role = "ENTREPRENEUR"
	RoleInvestor         Role = "INVESTOR"
	RoleMentor           Role = "MENTOR"
	RoleProgramOrganizer Role = "PROGRAM_ORGANIZER"
	RoleExpert           Role = "EXPERT"
	RoleAdmin            Role = "ADMIN"
	// RoleValidator is a legacy role still issued to some accounts.
	RoleValidator Role = "VALIDATOR"
)

// organizerSynonyms are folded into RoleProgramOrganizer.
var organizerSynonyms = map[string]struct{}{
	"ORGANIZER":                  {},
	"ORGANISER":                  {},
	"PROGRAM_ORGANISER":          {},
	"PROGRAMME_ORGANIZER":        {},
	"PROGRAMME_ORGANISER":        {},
	string(RoleProgramOrganizer): {},
}

// NormalizeRole canonicalises a raw role tag: surrounding space is trimmed, the
// tag is upper-cased, '-' and ' ' become '_' and organizer synonyms collapse to
// RoleProgramOrganizer. Unknown tags are returned in canonical form.
func NormalizeRole(raw string) Role {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	if _, ok := organizerSynonyms[s]; ok {
		return RoleProgramOrganizer
	}
	return Role(s)
}

// ParseRole matches raw against the known tags exactly. Only the organizer
// spellings fold into RoleProgramOrganizer; a tag in any other case or form is
// unrecognized so a misconfigured account stays visible.
func ParseRole(raw string) (Role, bool) {
	if _, ok := organizerSynonyms[raw]; ok {
		return RoleProgramOrganizer, true
	}
	switch r := Role(raw); r {
	case RoleEntrepreneur, RoleInvestor, RoleMentor, RoleExpert, RoleAdmin, RoleValidator:
		return r, true
	}
	return "", false
}

// RoleSet is an ordered, de-duplicated collection of normalized roles.
type RoleSet []Role

// NewRoleSet normalizes raw tags, dropping empty values and duplicates while
// keeping first-seen order.
func NewRoleSet(raw ...string) RoleSet {
	set := make(RoleSet, 0, len(raw))
	seen := make(map[Role]struct{}, len(raw))
	for _, r := range raw {
		role := NormalizeRole(r)
		if role == "" {
			continue
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		set = append(set, role)
	}
	return set
}

// Has reports whether the set contains role (compared after normalization).
func (s RoleSet) Has(role Role) bool {
	want := NormalizeRole(string(role))
	for _, r := range s {
		if r == want {
			return true
		}
	}
	return false
}

func (s RoleSet) Empty() bool { return len(s) == 0 }

// Strings returns the roles as plain strings, never nil.
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// RegistrableRoles are the roles a new account may ask for.
var RegistrableRoles = RoleSet{
	RoleEntrepreneur, RoleInvestor, RoleMentor, RoleExpert, RoleProgramOrganizer, RoleAdmin,
}
