// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package permission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/sec"
)

// # Postgres Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const permissionColumns = `id, name, COALESCE(description, ''), createdat`

func scanPermission(row pgx.Row) (*Permission, error) {
	p := &Permission{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Permission")
		}
		return nil, fmt.Errorf("postgres_permission_repo_scan_failed: %w", err)
	}
	return p, nil
}

func collectPermissions(rows pgx.Rows) ([]*Permission, error) {
	defer rows.Close()

	permissions := make([]*Permission, 0)
	for rows.Next() {
		p := &Permission{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres_permission_repo_scan_failed: %w", err)
		}
		permissions = append(permissions, p)
	}

	return permissions, rows.Err()
}

// # Definitions

/*
List returns every defined permission ordered by name.

Parameters:
  - context: context.Context

Returns:
  - []*Permission: All capability definitions
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Permission, error) {
	const query = `
		SELECT ` + permissionColumns + `
		FROM users.permission
		ORDER BY name ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_permission_repo_list_failed: %w", err)
	}

	return collectPermissions(rows)
}

/*
FindByID retrieves a single permission definition.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Permission: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Permission, error) {
	const query = `
		SELECT ` + permissionColumns + `
		FROM users.permission
		WHERE id = $1`

	return scanPermission(repository.pool.QueryRow(context, query, id))
}

/*
FindByName retrieves a single permission by its unique name.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Permission: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Permission, error) {
	const query = `
		SELECT ` + permissionColumns + `
		FROM users.permission
		WHERE name = $1`

	return scanPermission(repository.pool.QueryRow(context, query, name))
}

/*
Create persists a new permission definition.

Parameters:
  - context: context.Context
  - permission: *Permission

Returns:
  - error: Unique constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, permission *Permission) error {
	const query = `
		INSERT INTO users.permission (id, name, description, createdat)
		VALUES ($1, $2, NULLIF($3, ''), $4)`

	if permission.CreatedAt.IsZero() {
		permission.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		permission.ID,
		permission.Name,
		permission.Description,
		permission.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_permission_repo_create_failed: %w", err)
	}

	return nil
}

/*
Delete removes a permission definition. Grant rows cascade away via the
foreign keys declared in the migration.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM users.permission WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_permission_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Permission")
	}

	return nil
}

// # Role Grants

/*
GrantToRole attaches a permission to a role. Idempotent via ON CONFLICT.

Parameters:
  - context: context.Context
  - role: sec.UserRole
  - permissionID: string

Returns:
  - error: Foreign key violations or connectivity errors
*/
func (repository *PostgresRepository) GrantToRole(context context.Context, role sec.UserRole, permissionID string) error {
	const query = `
		INSERT INTO users.role_permission (role, permissionid, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (role, permissionid) DO NOTHING`

	_, err := repository.pool.Exec(context, query, role, permissionID)
	if err != nil {
		return fmt.Errorf("postgres_permission_repo_grant_role_failed: %w", err)
	}

	return nil
}

/*
RevokeFromRole detaches a permission from a role.

Parameters:
  - context: context.Context
  - role: sec.UserRole
  - permissionID: string

Returns:
  - error: apperr.NotFound when no grant existed, or database errors
*/
func (repository *PostgresRepository) RevokeFromRole(context context.Context, role sec.UserRole, permissionID string) error {
	const query = `DELETE FROM users.role_permission WHERE role = $1 AND permissionid = $2`

	tag, err := repository.pool.Exec(context, query, role, permissionID)
	if err != nil {
		return fmt.Errorf("postgres_permission_repo_revoke_role_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Role grant")
	}

	return nil
}

/*
ListForRole returns all permissions granted to a role.

Parameters:
  - context: context.Context
  - role: sec.UserRole

Returns:
  - []*Permission: Role capability set
  - error: Database errors
*/
func (repository *PostgresRepository) ListForRole(context context.Context, role sec.UserRole) ([]*Permission, error) {
	const query = `
		SELECT p.id, p.name, COALESCE(p.description, ''), p.createdat
		FROM users.permission p
		JOIN users.role_permission rp ON rp.permissionid = p.id
		WHERE rp.role = $1
		ORDER BY p.name ASC`

	rows, err := repository.pool.Query(context, query, role)
	if err != nil {
		return nil, fmt.Errorf("postgres_permission_repo_list_role_failed: %w", err)
	}

	return collectPermissions(rows)
}

// # User Grants

/*
GrantToUser attaches a permission to an individual user. Idempotent via
ON CONFLICT.

Parameters:
  - context: context.Context
  - userID: string
  - permissionID: string

Returns:
  - error: Foreign key violations or connectivity errors
*/
func (repository *PostgresRepository) GrantToUser(context context.Context, userID, permissionID string) error {
	const query = `
		INSERT INTO users.user_permission (userid, permissionid, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (userid, permissionid) DO NOTHING`

	_, err := repository.pool.Exec(context, query, userID, permissionID)
	if err != nil {
		return fmt.Errorf("postgres_permission_repo_grant_user_failed: %w", err)
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
  - error: apperr.NotFound when no grant existed, or database errors
*/
func (repository *PostgresRepository) RevokeFromUser(context context.Context, userID, permissionID string) error {
	const query = `DELETE FROM users.user_permission WHERE userid = $1 AND permissionid = $2`

	tag, err := repository.pool.Exec(context, query, userID, permissionID)
	if err != nil {
		return fmt.Errorf("postgres_permission_repo_revoke_user_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User grant")
	}

	return nil
}

// # Resolution

/*
ListEffective returns the union of the user's direct grants and the role's
grants, deduplicated.

Parameters:
  - context: context.Context
  - userID: string
  - role: sec.UserRole

Returns:
  - []*Permission: Effective capability set
  - error: Database errors
*/
func (repository *PostgresRepository) ListEffective(context context.Context, userID string, role sec.UserRole) ([]*Permission, error) {
	const query = `
		SELECT p.id, p.name, COALESCE(p.description, ''), p.createdat
		FROM users.permission p
		WHERE p.id IN (
			SELECT permissionid FROM users.role_permission WHERE role = $1
			UNION
			SELECT permissionid FROM users.user_permission WHERE userid = $2
		)
		ORDER BY p.name ASC`

	rows, err := repository.pool.Query(context, query, role, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_permission_repo_list_effective_failed: %w", err)
	}

	return collectPermissions(rows)
}

/*
HasGrant reports whether the named permission is reachable through either a
role grant or a direct user grant. One round trip.

Parameters:
  - context: context.Context
  - userID: string
  - role: sec.UserRole
  - name: string

Returns:
  - bool: Grant present
  - error: Database errors
*/
func (repository *PostgresRepository) HasGrant(context context.Context, userID string, role sec.UserRole, name string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM users.permission p
			WHERE p.name = $1
			  AND p.id IN (
				SELECT permissionid FROM users.role_permission WHERE role = $2
				UNION
				SELECT permissionid FROM users.user_permission WHERE userid = $3
			)
		)`

	var granted bool
	err := repository.pool.QueryRow(context, query, name, role, userID).Scan(&granted)
	if err != nil {
		return false, fmt.Errorf("postgres_permission_repo_has_grant_failed: %w", err)
	}

	return granted, nil
}
