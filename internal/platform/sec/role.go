// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can manage a department's curricula, subjects, and question banks
	RoleLeader UserRole = "leader"

	// Can upload and manage course files and question banks for their subjects
	RoleDoctor UserRole = "doctor"

	// Default role for enrolled students
	RoleStudent UserRole = "student"
)

// ParseRole converts a raw string into a known UserRole.
func ParseRole(raw string) (UserRole, bool) {
	switch UserRole(raw) {
	case RoleAdmin, RoleLeader, RoleDoctor, RoleStudent:
		return UserRole(raw), true
	default:
		return "", false
	}
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleLeader:
		return 30
	case RoleDoctor:
		return 20
	case RoleStudent:
		return 10
	default:
		return 0
	}
}
