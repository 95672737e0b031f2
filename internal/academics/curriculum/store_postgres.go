// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package curriculum

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const curriculumColumns = `id, subjectid, title, COALESCE(description, ''), createdat, updatedat`

func (repository *PostgresRepository) ListBySubject(context context.Context, subjectID string) ([]*Curriculum, error) {
	const query = `
		SELECT ` + curriculumColumns + `
		FROM academics.curriculum
		WHERE subjectid = $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("postgres_curriculum_repo_list_failed: %w", err)
	}
	defer rows.Close()

	curricula := make([]*Curriculum, 0)
	for rows.Next() {
		c := &Curriculum{}
		if err := rows.Scan(&c.ID, &c.SubjectID, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres_curriculum_repo_scan_failed: %w", err)
		}
		curricula = append(curricula, c)
	}

	return curricula, rows.Err()
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Curriculum, error) {
	const query = `SELECT ` + curriculumColumns + ` FROM academics.curriculum WHERE id = $1`

	c := &Curriculum{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&c.ID, &c.SubjectID, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Curriculum")
		}
		return nil, fmt.Errorf("postgres_curriculum_repo_find_failed: %w", err)
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, curriculum *Curriculum) error {
	const query = `
		INSERT INTO academics.curriculum (id, subjectid, title, description, createdat, updatedat)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`

	now := time.Now()
	curriculum.CreatedAt = now
	curriculum.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		curriculum.ID, curriculum.SubjectID, curriculum.Title,
		curriculum.Description, curriculum.CreatedAt, curriculum.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_curriculum_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, curriculum *Curriculum) error {
	const query = `
		UPDATE academics.curriculum
		SET title = $2, description = NULLIF($3, ''), updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		curriculum.ID, curriculum.Title, curriculum.Description,
	)
	if err != nil {
		return fmt.Errorf("postgres_curriculum_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Curriculum")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM academics.curriculum WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_curriculum_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Curriculum")
	}

	return nil
}

func (repository *PostgresRepository) SubjectExists(context context.Context, subjectID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM academics.subject WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, subjectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_curriculum_repo_subject_check_failed: %w", err)
	}

	return exists, nil
}
