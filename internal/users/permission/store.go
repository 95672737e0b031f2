// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package permission

import (
	"context"

	"github.com/acadex-platform/acadex/internal/platform/sec"
)

// # Data Access Contract

// Repository defines the persistence contract for capabilities and grants.
type Repository interface {

	// List returns every defined permission ordered by name.
	List(context context.Context) ([]*Permission, error)

	// FindByID returns a single permission, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Permission, error)

	// FindByName returns a single permission by its unique name, or apperr.NotFound.
	FindByName(context context.Context, name string) (*Permission, error)

	// Create persists a new permission definition.
	Create(context context.Context, permission *Permission) error

	// Delete removes a permission and cascades away its grants.
	Delete(context context.Context, id string) error

	// GrantToRole attaches a permission to a role. Granting an existing
	// pair is a no-op.
	GrantToRole(context context.Context, role sec.UserRole, permissionID string) error

	// RevokeFromRole detaches a permission from a role.
	RevokeFromRole(context context.Context, role sec.UserRole, permissionID string) error

	// ListForRole returns all permissions granted to a role.
	ListForRole(context context.Context, role sec.UserRole) ([]*Permission, error)

	// GrantToUser attaches a permission to an individual user. Granting an
	// existing pair is a no-op.
	GrantToUser(context context.Context, userID, permissionID string) error

	// RevokeFromUser detaches a direct user grant.
	RevokeFromUser(context context.Context, userID, permissionID string) error

	// ListEffective returns the union of the user's direct grants and the
	// grants of the given role, deduplicated, ordered by name.
	ListEffective(context context.Context, userID string, role sec.UserRole) ([]*Permission, error)

	// HasGrant reports whether the named permission is reachable through
	// either the role or a direct user grant.
	HasGrant(context context.Context, userID string, role sec.UserRole, name string) (bool, error)
}
