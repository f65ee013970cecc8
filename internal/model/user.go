// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain types shared across the application,
// including the Role variant and event log constants.
package model

// Role is the permission tier attached to a user. The set is closed;
// anything else is rejected at the boundary.
type Role string

// User roles, ordered by privilege.
const (
	RoleAdmin          Role = "admin"
	RoleRulesCommittee Role = "rules_committee"
	RoleMember         Role = "member"
	RoleGuest          Role = "guest"
)

// Roles lists all valid roles, most privileged first.
var Roles = []Role{RoleAdmin, RoleRulesCommittee, RoleMember, RoleGuest}

// ParseRole converts a string to a Role. Returns false for anything
// outside the closed set.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if r.Valid() {
		return r, true
	}
	return "", false
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRulesCommittee, RoleMember, RoleGuest:
		return true
	}
	return false
}

// Level returns a numeric level for role hierarchy checks.
// Higher level = more permissions.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleRulesCommittee:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// IsAdmin reports whether the role is admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
