// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package year

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

const yearColumns = `id, departmentid, number, name, createdat, updatedat`

// Study years per department are few; the listing is unpaginated.
func (repository *PostgresRepository) ListByDepartment(context context.Context, departmentID string) ([]*Year, error) {
	const query = `
		SELECT ` + yearColumns + `
		FROM academics.studyyear
		WHERE departmentid = $1
		ORDER BY number ASC`

	rows, err := repository.pool.Query(context, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("postgres_year_repo_list_failed: %w", err)
	}
	defer rows.Close()

	years := make([]*Year, 0)
	for rows.Next() {
		y := &Year{}
		if err := rows.Scan(&y.ID, &y.DepartmentID, &y.Number, &y.Name, &y.CreatedAt, &y.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres_year_repo_scan_failed: %w", err)
		}
		years = append(years, y)
	}

	return years, rows.Err()
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Year, error) {
	const query = `SELECT ` + yearColumns + ` FROM academics.studyyear WHERE id = $1`

	y := &Year{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&y.ID, &y.DepartmentID, &y.Number, &y.Name, &y.CreatedAt, &y.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Study year")
		}
		return nil, fmt.Errorf("postgres_year_repo_find_failed: %w", err)
	}

	return y, nil
}

func (repository *PostgresRepository) Create(context context.Context, year *Year) error {
	const query = `
		INSERT INTO academics.studyyear (id, departmentid, number, name, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	year.CreatedAt = now
	year.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		year.ID, year.DepartmentID, year.Number, year.Name, year.CreatedAt, year.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("This year number already exists for the department")
		}
		return fmt.Errorf("postgres_year_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, year *Year) error {
	const query = `
		UPDATE academics.studyyear
		SET number = $2, name = $3, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, year.ID, year.Number, year.Name)
	if err != nil {
		return fmt.Errorf("postgres_year_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Study year")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM academics.studyyear WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_year_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Study year")
	}

	return nil
}

func (repository *PostgresRepository) DepartmentExists(context context.Context, departmentID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM academics.department WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, departmentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_year_repo_parent_check_failed: %w", err)
	}

	return exists, nil
}
