package model

import "time"

// Permission is a capability a user holds.
type Permission string

const (
	// PermissionAdmin satisfies any required-permission check.
	PermissionAdmin Permission = "admin"

	PermissionCreateEvents Permission = "events:create"
	PermissionEditEvents   Permission = "events:edit"
	PermissionDeleteEvents Permission = "events:delete"
	PermissionManageUsers  Permission = "users:manage"
)

// String returns the string representation of the permission.
func (p Permission) String() string {
	return string(p)
}

// Role is a display-level grouping of users. Roles carry no authority by
// themselves; permissions do.
type Role string

const (
	RoleMember    Role = "member"
	RoleOfficer   Role = "officer"
	RolePresident Role = "president"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DefaultPermissions returns the permission set conventionally granted to a
// role. Used by bootstrap tooling; stored permissions are authoritative.
func DefaultPermissions(r Role) []Permission {
	switch r {
	case RoleOfficer:
		return []Permission{PermissionCreateEvents, PermissionEditEvents}
	case RolePresident:
		return []Permission{PermissionAdmin}
	default:
		return nil
	}
}

// User is a club member account. It is the acting entity for all event
// mutations; the lifecycle manager only ever reads its permission set.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Permissions []Permission `json:"permissions,omitempty"`
	Roles       []Role       `json:"roles,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// SecretHash is the SHA-256 hex digest of the user's bearer secret.
	// The secret itself is never persisted or serialized.
	SecretHash string `json:"-"`
}

// HasPermission reports whether the user holds the given permission exactly
// (no admin override; see auth.HasPermission for the full check).
func (u *User) HasPermission(p Permission) bool {
	for _, held := range u.Permissions {
		if held == p {
			return true
		}
	}
	return false
}
