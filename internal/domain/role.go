package domain

import "strings"

// Role is an access tier gating write operations.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// DefaultRole is assigned at registration.
const DefaultRole = RoleViewer

var knownRoles = []Role{RoleAdmin, RoleEditor, RoleViewer}

func ParseRole(value string) (Role, bool) {
	candidate := Role(strings.ToLower(strings.TrimSpace(value)))
	for _, role := range knownRoles {
		if role == candidate {
			return role, true
		}
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}
