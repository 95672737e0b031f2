// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package permission implements fine-grained access control on top of the
coarse role hierarchy.

A permission is a named capability (e.g. "files.upload"). Capabilities can be
granted to a whole role or to an individual user; a user's effective set is
the union of both. The [Service] satisfies the authorization middleware's
resolver contract so route guards can consult it directly.
*/
package permission

import (
	"time"

	"github.com/acadex-platform/acadex/internal/platform/sec"
)

// # Domain Entities

// Permission represents a single named capability.
type Permission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoleGrant associates a capability with every holder of a role.
type RoleGrant struct {
	Role         sec.UserRole `json:"role"`
	PermissionID string       `json:"permission_id"`
	CreatedAt    time.Time    `json:"created_at"`
}

// UserGrant associates a capability with one specific user, independent
// of their role.
type UserGrant struct {
	UserID       string    `json:"user_id"`
	PermissionID string    `json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldRole         = "role"
	FieldPermissionID = "permission_id"
	FieldUserID       = "user_id"
)
