// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
)

// PostgresRepository implements [Repository] backed by content.image.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const imageColumns = `id, ownerid, objectkey, contenttype, sizebytes, createdat, updatedat`

func (repo *PostgresRepository) FindByOwner(context context.Context, ownerID string) (*Image, error) {
	query := `SELECT ` + imageColumns + ` FROM content.image WHERE ownerid = $1`

	var image Image
	err := repo.pool.QueryRow(context, query, ownerID).Scan(
		&image.ID, &image.OwnerID, &image.ObjectKey,
		&image.ContentType, &image.SizeBytes,
		&image.CreatedAt, &image.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Image")
		}
		return nil, fmt.Errorf("postgres_image_repo_find_failed: %w", err)
	}

	return &image, nil
}

func (repo *PostgresRepository) Upsert(context context.Context, image *Image) error {
	query := `
		INSERT INTO content.image (id, ownerid, objectkey, contenttype, sizebytes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ownerid) DO UPDATE SET
			objectkey = EXCLUDED.objectkey,
			contenttype = EXCLUDED.contenttype,
			sizebytes = EXCLUDED.sizebytes,
			updatedat = NOW()`

	_, err := repo.pool.Exec(context, query,
		image.ID, image.OwnerID, image.ObjectKey, image.ContentType, image.SizeBytes,
	)
	if err != nil {
		return fmt.Errorf("postgres_image_repo_upsert_failed: %w", err)
	}

	return nil
}

func (repo *PostgresRepository) DeleteByOwner(context context.Context, ownerID string) error {
	_, err := repo.pool.Exec(context, `DELETE FROM content.image WHERE ownerid = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("postgres_image_repo_delete_failed: %w", err)
	}
	return nil
}
