// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package file

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
)

// # File Repository

// PostgresFileRepository implements the FileRepository interface using pgx.
type PostgresFileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository creates a new PostgreSQL implementation of the FileRepository.
func NewFileRepository(pool *pgxpool.Pool) *PostgresFileRepository {
	return &PostgresFileRepository{pool: pool}
}

// Rating aggregates ride along on every read via a LEFT JOIN.
const fileSelect = `
	SELECT f.id, f.curriculumid, f.uploaderid, f.name, f.objectkey,
	       f.contenttype, f.sizebytes, f.createdat,
	       COALESCE(AVG(r.score), 0), COUNT(r.score)
	FROM content.file f
	LEFT JOIN content.rating r ON r.fileid = f.id`

const fileGroup = ` GROUP BY f.id, f.curriculumid, f.uploaderid, f.name, f.objectkey, f.contenttype, f.sizebytes, f.createdat`

func (repository *PostgresFileRepository) ListByCurriculum(context context.Context, curriculumID string) ([]*File, error) {
	const query = fileSelect + `
	WHERE f.curriculumid = $1` + fileGroup + `
	ORDER BY f.createdat DESC`

	rows, err := repository.pool.Query(context, query, curriculumID)
	if err != nil {
		return nil, fmt.Errorf("postgres_file_repo_list_failed: %w", err)
	}
	defer rows.Close()

	files := make([]*File, 0)
	for rows.Next() {
		f := &File{}
		err := rows.Scan(
			&f.ID, &f.CurriculumID, &f.UploaderID, &f.Name, &f.ObjectKey,
			&f.ContentType, &f.SizeBytes, &f.CreatedAt,
			&f.AverageRating, &f.RatingCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_file_repo_scan_failed: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

func (repository *PostgresFileRepository) FindByID(context context.Context, id string) (*File, error) {
	const query = fileSelect + `
	WHERE f.id = $1` + fileGroup

	f := &File{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&f.ID, &f.CurriculumID, &f.UploaderID, &f.Name, &f.ObjectKey,
		&f.ContentType, &f.SizeBytes, &f.CreatedAt,
		&f.AverageRating, &f.RatingCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("File")
		}
		return nil, fmt.Errorf("postgres_file_repo_find_failed: %w", err)
	}

	return f, nil
}

func (repository *PostgresFileRepository) Create(context context.Context, file *File) error {
	const query = `
		INSERT INTO content.file (id, curriculumid, uploaderid, name, objectkey, contenttype, sizebytes, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		file.ID, file.CurriculumID, file.UploaderID, file.Name,
		file.ObjectKey, file.ContentType, file.SizeBytes, file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_file_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresFileRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM content.file WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_file_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("File")
	}

	return nil
}

func (repository *PostgresFileRepository) CurriculumExists(context context.Context, curriculumID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM academics.curriculum WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, curriculumID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_file_repo_curriculum_check_failed: %w", err)
	}

	return exists, nil
}

// # Rating Repository

// PostgresRatingRepository implements the RatingRepository interface using pgx.
type PostgresRatingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository creates a new PostgreSQL implementation of the RatingRepository.
func NewRatingRepository(pool *pgxpool.Pool) *PostgresRatingRepository {
	return &PostgresRatingRepository{pool: pool}
}

// Upsert stores the user's score, replacing any previous one.
func (repository *PostgresRatingRepository) Upsert(context context.Context, rating *Rating) error {
	const query = `
		INSERT INTO content.rating (fileid, userid, score, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (fileid, userid) DO UPDATE
		SET score = EXCLUDED.score, updatedat = NOW()`

	_, err := repository.pool.Exec(context, query, rating.FileID, rating.UserID, rating.Score)
	if err != nil {
		return fmt.Errorf("postgres_rating_repo_upsert_failed: %w", err)
	}

	return nil
}
