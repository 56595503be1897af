package entity

import (
	"slices"
	"strings"
)

// Role is an authorization role carried by an access token.
type Role string

const (
	// RoleUser manages their own devices and task reminders.
	RoleUser Role = "user"
	// RoleAdmin may also trigger dispatch on demand.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether chime knows the role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Roles is the set of roles of one caller.
type Roles []Role

// Contains reports whether role is in the set.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ParseRoles reads a token's role claim. Values are trimmed and lower-cased;
// unknown roles and duplicates are dropped. Non-string entries are ignored.
func ParseRoles(claim []any) Roles {
	roles := make(Roles, 0, len(claim))
	for _, v := range claim {
		s, ok := v.(string)
		if !ok {
			continue
		}
		role := Role(strings.ToLower(strings.TrimSpace(s)))
		if role.IsValid() && !roles.Contains(role) {
			roles = append(roles, role)
		}
	}

	return roles
}
