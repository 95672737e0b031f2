// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package subject

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

const subjectColumns = `id, departmentid, yearid, name, slug, COALESCE(description, ''), createdat, updatedat`

func (repository *PostgresRepository) ListByYear(context context.Context, yearID string, limit, offset int) ([]*Subject, int, error) {
	const countQuery = `SELECT COUNT(*) FROM academics.subject WHERE yearid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, yearID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_subject_repo_count_failed: %w", err)
	}

	const query = `
		SELECT ` + subjectColumns + `
		FROM academics.subject
		WHERE yearid = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, yearID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_subject_repo_list_failed: %w", err)
	}
	defer rows.Close()

	subjects := make([]*Subject, 0, limit)
	for rows.Next() {
		s := &Subject{}
		err := rows.Scan(&s.ID, &s.DepartmentID, &s.YearID, &s.Name, &s.Slug, &s.Description, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_subject_repo_scan_failed: %w", err)
		}
		subjects = append(subjects, s)
	}

	return subjects, total, rows.Err()
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Subject, error) {
	const query = `SELECT ` + subjectColumns + ` FROM academics.subject WHERE id = $1`

	s := &Subject{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&s.ID, &s.DepartmentID, &s.YearID, &s.Name, &s.Slug, &s.Description, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Subject")
		}
		return nil, fmt.Errorf("postgres_subject_repo_find_failed: %w", err)
	}

	return s, nil
}

func (repository *PostgresRepository) Create(context context.Context, subject *Subject) error {
	const query = `
		INSERT INTO academics.subject (id, departmentid, yearid, name, slug, description, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`

	now := time.Now()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		subject.ID, subject.DepartmentID, subject.YearID, subject.Name,
		subject.Slug, subject.Description, subject.CreatedAt, subject.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A subject with a similar name already exists")
		}
		return fmt.Errorf("postgres_subject_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, subject *Subject) error {
	const query = `
		UPDATE academics.subject
		SET name = $2, slug = $3, description = NULLIF($4, ''), updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		subject.ID, subject.Name, subject.Slug, subject.Description,
	)
	if err != nil {
		return fmt.Errorf("postgres_subject_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Subject")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM academics.subject WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_subject_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Subject")
	}

	return nil
}

func (repository *PostgresRepository) DepartmentExists(context context.Context, departmentID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM academics.department WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, departmentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_subject_repo_department_check_failed: %w", err)
	}

	return exists, nil
}

func (repository *PostgresRepository) YearExists(context context.Context, yearID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM academics.studyyear WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, yearID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_subject_repo_year_check_failed: %w", err)
	}

	return exists, nil
}
