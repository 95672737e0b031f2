// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package university

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

const universityColumns = `id, name, slug, COALESCE(description, ''), COALESCE(logokey, ''), createdat, updatedat`

func scanUniversity(row pgx.Row) (*University, error) {
	u := &University{}
	err := row.Scan(&u.ID, &u.Name, &u.Slug, &u.Description, &u.LogoKey, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("University")
		}
		return nil, fmt.Errorf("postgres_university_repo_scan_failed: %w", err)
	}
	return u, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*University, int, error) {
	const countQuery = `SELECT COUNT(*) FROM academics.university`

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_university_repo_count_failed: %w", err)
	}

	const query = `
		SELECT ` + universityColumns + `
		FROM academics.university
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_university_repo_list_failed: %w", err)
	}
	defer rows.Close()

	universities := make([]*University, 0, limit)
	for rows.Next() {
		u := &University{}
		err := rows.Scan(&u.ID, &u.Name, &u.Slug, &u.Description, &u.LogoKey, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_university_repo_scan_failed: %w", err)
		}
		universities = append(universities, u)
	}

	return universities, total, rows.Err()
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*University, error) {
	const query = `SELECT ` + universityColumns + ` FROM academics.university WHERE id = $1`
	return scanUniversity(repository.pool.QueryRow(context, query, id))
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*University, error) {
	const query = `SELECT ` + universityColumns + ` FROM academics.university WHERE slug = $1`
	return scanUniversity(repository.pool.QueryRow(context, query, slug))
}

func (repository *PostgresRepository) Create(context context.Context, university *University) error {
	const query = `
		INSERT INTO academics.university (id, name, slug, description, logokey, createdat, updatedat)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)`

	now := time.Now()
	university.CreatedAt = now
	university.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		university.ID, university.Name, university.Slug,
		university.Description, university.LogoKey,
		university.CreatedAt, university.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A university with a similar name already exists")
		}
		return fmt.Errorf("postgres_university_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, university *University) error {
	const query = `
		UPDATE academics.university
		SET name = $2, slug = $3, description = NULLIF($4, ''), updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		university.ID, university.Name, university.Slug, university.Description,
	)
	if err != nil {
		return fmt.Errorf("postgres_university_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("University")
	}

	return nil
}

func (repository *PostgresRepository) UpdateLogoKey(context context.Context, id, logoKey string) error {
	const query = `
		UPDATE academics.university
		SET logokey = $2, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, logoKey)
	if err != nil {
		return fmt.Errorf("postgres_university_repo_logo_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("University")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM academics.university WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_university_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("University")
	}

	return nil
}
