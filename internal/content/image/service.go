// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package image

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/storage"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// # Service Layer

// Service stores display images for owning entities.
type Service struct {
	repository    Repository
	objectStorage storage.ObjectStorage
	logger        *slog.Logger
}

// NewService constructs a new image [Service].
func NewService(repository Repository, objectStorage storage.ObjectStorage, logger *slog.Logger) *Service {
	return &Service{
		repository:    repository,
		objectStorage: objectStorage,
		logger:        logger,
	}
}

/*
Store uploads an image for the given owner and returns the object key.

Description: Keys are stable per owner ("logos/<ownerID>"), so re-storing
overwrites the previous bytes in place and leaves no orphan. The bytes
reach object storage FIRST; the metadata row follows, so a storage
failure produces no row.

The caller has already validated size and content type.

Parameters:
  - context: context.Context
  - ownerID: string
  - reader: io.Reader
  - size: int64
  - contentType: string

Returns:
  - string: The stored object key
  - error: Upload or storage failures
*/
func (service *Service) Store(context context.Context, ownerID string, reader io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("logos/%s", ownerID)

	if err := service.objectStorage.Upload(context, key, reader, size, contentType); err != nil {
		return "", fmt.Errorf("image_service_store_failed: %w", err)
	}

	image := &Image{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ObjectKey:   key,
		ContentType: contentType,
		SizeBytes:   size,
	}

	if err := service.repository.Upsert(context, image); err != nil {
		return "", fmt.Errorf("image_service_metadata_failed: %w", err)
	}

	service.logger.Info("image_stored",
		slog.String("owner_id", ownerID),
		slog.Int64("size_bytes", size),
	)

	return key, nil
}

/*
Download streams the owner's stored image.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - *Image: Metadata (content type) for response headers
  - io.ReadCloser: Image bytes
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Download(context context.Context, ownerID string) (*Image, io.ReadCloser, error) {
	image, err := service.repository.FindByOwner(context, ownerID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := service.objectStorage.Download(context, image.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("image_service_download_failed: %w", err)
	}

	return image, reader, nil
}

/*
Remove deletes the owner's image from storage and the metadata row.

Description: The storage delete gates the row delete, mirroring the
upload ordering.
*/
func (service *Service) Remove(context context.Context, ownerID string) error {
	image, err := service.repository.FindByOwner(context, ownerID)
	if err != nil {
		return err
	}

	if err := service.objectStorage.Delete(context, image.ObjectKey); err != nil {
		return fmt.Errorf("image_service_remove_failed: %w", err)
	}

	if err := service.repository.DeleteByOwner(context, ownerID); err != nil {
		return fmt.Errorf("image_service_metadata_failed: %w", err)
	}

	return nil
}
