// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package college

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

const collegeColumns = `id, universityid, name, slug, COALESCE(description, ''), createdat, updatedat`

func (repository *PostgresRepository) ListByUniversity(context context.Context, universityID string, limit, offset int) ([]*College, int, error) {
	const countQuery = `SELECT COUNT(*) FROM academics.college WHERE universityid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, universityID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_college_repo_count_failed: %w", err)
	}

	const query = `
		SELECT ` + collegeColumns + `
		FROM academics.college
		WHERE universityid = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, universityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_college_repo_list_failed: %w", err)
	}
	defer rows.Close()

	colleges := make([]*College, 0, limit)
	for rows.Next() {
		c := &College{}
		err := rows.Scan(&c.ID, &c.UniversityID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_college_repo_scan_failed: %w", err)
		}
		colleges = append(colleges, c)
	}

	return colleges, total, rows.Err()
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*College, error) {
	const query = `SELECT ` + collegeColumns + ` FROM academics.college WHERE id = $1`

	c := &College{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&c.ID, &c.UniversityID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("College")
		}
		return nil, fmt.Errorf("postgres_college_repo_find_failed: %w", err)
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, college *College) error {
	const query = `
		INSERT INTO academics.college (id, universityid, name, slug, description, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`

	now := time.Now()
	college.CreatedAt = now
	college.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		college.ID, college.UniversityID, college.Name, college.Slug,
		college.Description, college.CreatedAt, college.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A college with a similar name already exists")
		}
		return fmt.Errorf("postgres_college_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, college *College) error {
	const query = `
		UPDATE academics.college
		SET name = $2, slug = $3, description = NULLIF($4, ''), updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		college.ID, college.Name, college.Slug, college.Description,
	)
	if err != nil {
		return fmt.Errorf("postgres_college_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("College")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM academics.college WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_college_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("College")
	}

	return nil
}

func (repository *PostgresRepository) UniversityExists(context context.Context, universityID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM academics.university WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, universityID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_college_repo_parent_check_failed: %w", err)
	}

	return exists, nil
}
