// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package permission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// # Service Layer

// Service orchestrates capability management and grant resolution.
//
// It doubles as the resolver behind the RequirePermission route guard, so
// every permission check in the API funnels through HasPermission.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new permission [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// # Definitions

/*
ListPermissions returns every defined capability.

Parameters:
  - context: context.Context

Returns:
  - []*Permission: All definitions ordered by name
  - error: Storage failures
*/
func (service *Service) ListPermissions(context context.Context) ([]*Permission, error) {
	return service.repository.List(context)
}

/*
GetPermission retrieves a single capability definition.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Permission: The definition
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GetPermission(context context.Context, id string) (*Permission, error) {
	return service.repository.FindByID(context, id)
}

// CreateInput holds the data for a new capability definition.
type CreateInput struct {
	Name        string
	Description string
}

/*
CreatePermission registers a new named capability.

Description: Names are unique across the platform. A duplicate name yields
a client-safe Conflict error.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Permission: Created definition
  - error: Conflict or storage failures
*/
func (service *Service) CreatePermission(context context.Context, input CreateInput) (*Permission, error) {
	_, err := service.repository.FindByName(context, input.Name)
	if err == nil {
		return nil, apperr.Conflict("Permission name is already in use")
	}

	permission := &Permission{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}

	if err := service.repository.Create(context, permission); err != nil {
		return nil, fmt.Errorf("permission_service_create_failed: %w", err)
	}

	service.logger.Info("permission_created", slog.String("name", input.Name))

	return permission, nil
}

/*
DeletePermission removes a capability and all of its grants.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) DeletePermission(context context.Context, id string) error {
	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("permission_deleted", slog.String("permission_id", id))

	return nil
}

// # Grant Management

/*
GrantToRole attaches a capability to every holder of a role.

Description: Verifies that the permission exists first so the caller gets a
404 instead of an opaque foreign key violation.

Parameters:
  - context: context.Context
  - role: sec.UserRole
  - permissionID: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GrantToRole(context context.Context, role sec.UserRole, permissionID string) error {
	if _, err := service.repository.FindByID(context, permissionID); err != nil {
		return err
	}

	if err := service.repository.GrantToRole(context, role, permissionID); err != nil {
		return fmt.Errorf("permission_service_grant_role_failed: %w", err)
	}

	return nil
}

/*
RevokeFromRole detaches a capability from a role.

Parameters:
  - context: context.Context
  - role: sec.UserRole
  - permissionID: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) RevokeFromRole(context context.Context, role sec.UserRole, permissionID string) error {
	return service.repository.RevokeFromRole(context, role, permissionID)
}

/*
ListForRole returns the capability set attached to a role.

Parameters:
  - context: context.Context
  - role: sec.UserRole

Returns:
  - []*Permission: Role grants
  - error: Storage failures
*/
func (service *Service) ListForRole(context context.Context, role sec.UserRole) ([]*Permission, error) {
	return service.repository.ListForRole(context, role)
}

/*
GrantToUser attaches a capability to an individual user.

Parameters:
  - context: context.Context
  - userID: string
  - permissionID: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GrantToUser(context context.Context, userID, permissionID string) error {
	if _, err := service.repository.FindByID(context, permissionID); err != nil {
		return err
	}

	if err := service.repository.GrantToUser(context, userID, permissionID); err != nil {
		return fmt.Errorf("permission_service_grant_user_failed: %w", err)
	}

	return nil
}

/*
RevokeFromUser detaches a direct user grant.

Parameters:
  - context: context.Context
  - userID: string
  - permissionID: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) RevokeFromUser(context context.Context, userID, permissionID string) error {
	return service.repository.RevokeFromUser(context, userID, permissionID)
}

// # Resolution

/*
ListEffective resolves a user's full capability set.

Description: The effective set is the union of the user's role grants and
their direct grants, deduplicated.

Parameters:
  - context: context.Context
  - userID: string
  - role: sec.UserRole

Returns:
  - []*Permission: Effective capability set
  - error: Storage failures
*/
func (service *Service) ListEffective(context context.Context, userID string, role sec.UserRole) ([]*Permission, error) {
	return service.repository.ListEffective(context, userID, role)
}

/*
HasPermission reports whether the user may exercise the named capability.

Description: Satisfies the authorization middleware's resolver contract.
A capability is held when it is granted to the user's role OR directly to
the user; there is no implicit bypass for any role.

Parameters:
  - context: context.Context
  - userID: string
  - role: sec.UserRole
  - permission: string

Returns:
  - bool: Capability held
  - error: Storage failures
*/
func (service *Service) HasPermission(context context.Context, userID string, role sec.UserRole, permission string) (bool, error) {
	granted, err := service.repository.HasGrant(context, userID, role, permission)
	if err != nil {
		return false, fmt.Errorf("permission_service_resolve_failed: %w", err)
	}

	return granted, nil
}
