// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package department

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const departmentColumns = `id, collegeid, name, slug, createdat, updatedat`

func (repository *PostgresRepository) ListByCollege(context context.Context, collegeID string, limit, offset int) ([]*Department, int, error) {
	const countQuery = `SELECT COUNT(*) FROM academics.department WHERE collegeid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, collegeID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_department_repo_count_failed: %w", err)
	}

	const query = `
		SELECT ` + departmentColumns + `
		FROM academics.department
		WHERE collegeid = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, collegeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_department_repo_list_failed: %w", err)
	}
	defer rows.Close()

	departments := make([]*Department, 0, limit)
	for rows.Next() {
		d := &Department{}
		if err := rows.Scan(&d.ID, &d.CollegeID, &d.Name, &d.Slug, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres_department_repo_scan_failed: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, total, rows.Err()
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Department, error) {
	const query = `SELECT ` + departmentColumns + ` FROM academics.department WHERE id = $1`

	d := &Department{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&d.ID, &d.CollegeID, &d.Name, &d.Slug, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Department")
		}
		return nil, fmt.Errorf("postgres_department_repo_find_failed: %w", err)
	}

	return d, nil
}

func (repository *PostgresRepository) Create(context context.Context, department *Department) error {
	const query = `
		INSERT INTO academics.department (id, collegeid, name, slug, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	department.CreatedAt = now
	department.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		department.ID, department.CollegeID, department.Name, department.Slug,
		department.CreatedAt, department.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A department with a similar name already exists")
		}
		return fmt.Errorf("postgres_department_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, department *Department) error {
	const query = `
		UPDATE academics.department
		SET name = $2, slug = $3, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, department.ID, department.Name, department.Slug)
	if err != nil {
		return fmt.Errorf("postgres_department_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Department")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM academics.department WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_department_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Department")
	}

	return nil
}

func (repository *PostgresRepository) CollegeExists(context context.Context, collegeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM academics.college WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, collegeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_department_repo_parent_check_failed: %w", err)
	}

	return exists, nil
}
