// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/storage"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// # Service Layer

// Service orchestrates document upload, download, deletion, and rating.
type Service struct {
	fileRepository   FileRepository
	ratingRepository RatingRepository
	objectStorage    storage.ObjectStorage
	logger           *slog.Logger
}

// NewService constructs a new file [Service] with its dependencies.
func NewService(
	fileRepo FileRepository,
	ratingRepo RatingRepository,
	objectStorage storage.ObjectStorage,
	logger *slog.Logger,
) *Service {
	return &Service{
		fileRepository:   fileRepo,
		ratingRepository: ratingRepo,
		objectStorage:    objectStorage,
		logger:           logger,
	}
}

/*
ListFiles returns all files of a curriculum with rating aggregates.

Parameters:
  - context: context.Context
  - curriculumID: string

Returns:
  - []*File: Files, newest first
  - error: apperr.NotFound or storage failures
*/
func (service *Service) ListFiles(context context.Context, curriculumID string) ([]*File, error) {
	exists, err := service.fileRepository.CurriculumExists(context, curriculumID)
	if err != nil {
		return nil, fmt.Errorf("file_service_curriculum_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Curriculum")
	}

	return service.fileRepository.ListByCurriculum(context, curriculumID)
}

// UploadInput holds the parameters of a document upload.
type UploadInput struct {
	CurriculumID string
	UploaderID   string
	Name         string
	Reader       io.Reader
	SizeBytes    int64
	ContentType  string
}

/*
Upload stores a new course document.

Description: The owning curriculum must exist (404 otherwise). The bytes
reach object storage FIRST; the metadata row is only inserted after the
upload succeeds, so a storage failure produces no row.

The handler has already validated size and content type before this runs.

Parameters:
  - context: context.Context
  - input: UploadInput

Returns:
  - *File: Created metadata
  - error: apperr.NotFound, upload, or storage failures
*/
func (service *Service) Upload(context context.Context, input UploadInput) (*File, error) {
	exists, err := service.fileRepository.CurriculumExists(context, input.CurriculumID)
	if err != nil {
		return nil, fmt.Errorf("file_service_curriculum_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Curriculum")
	}

	file := &File{
		ID:           uuid.New(),
		CurriculumID: input.CurriculumID,
		UploaderID:   input.UploaderID,
		Name:         input.Name,
		ContentType:  input.ContentType,
		SizeBytes:    input.SizeBytes,
	}

	// Keys live under the curriculum prefix so a curriculum delete can
	// purge every document in one prefix operation.
	file.ObjectKey = fmt.Sprintf("curricula/%s/%s", input.CurriculumID, file.ID)

	if err := service.objectStorage.Upload(context, file.ObjectKey, input.Reader, input.SizeBytes, input.ContentType); err != nil {
		return nil, fmt.Errorf("file_service_upload_failed: %w", err)
	}

	if err := service.fileRepository.Create(context, file); err != nil {
		return nil, fmt.Errorf("file_service_metadata_failed: %w", err)
	}

	service.logger.Info("file_uploaded",
		slog.String("file_id", file.ID),
		slog.String("curriculum_id", input.CurriculumID),
		slog.Int64("size_bytes", input.SizeBytes),
	)

	return file, nil
}

// GetFile returns a single file's metadata.
func (service *Service) GetFile(context context.Context, id string) (*File, error) {
	return service.fileRepository.FindByID(context, id)
}

/*
Download streams a stored document.

Description: The metadata row is resolved first; an absent ID yields 404
before storage is consulted. The caller owns the returned reader.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *File: Metadata (name, content type) for response headers
  - io.ReadCloser: Document bytes
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Download(context context.Context, id string) (*File, io.ReadCloser, error) {
	file, err := service.fileRepository.FindByID(context, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := service.objectStorage.Download(context, file.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("file_service_download_failed: %w", err)
	}

	return file, reader, nil
}

/*
RateFile records a user's score for a document.

Description: The file is fetched first; an absent ID yields 404
"File not found" and the rating write is never invoked. A user re-rating
a file replaces their previous score.

Parameters:
  - context: context.Context
  - fileID: string
  - userID: string
  - score: int (1 to 5, validated by the handler)

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) RateFile(context context.Context, fileID, userID string, score int) error {
	if _, err := service.fileRepository.FindByID(context, fileID); err != nil {
		return err
	}

	rating := &Rating{
		FileID: fileID,
		UserID: userID,
		Score:  score,
	}

	if err := service.ratingRepository.Upsert(context, rating); err != nil {
		return fmt.Errorf("file_service_rate_failed: %w", err)
	}

	return nil
}

/*
Delete removes a document and its metadata.

Description: The object is removed from storage FIRST and gates the row
delete; a storage failure leaves the row intact for retry.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	file, err := service.fileRepository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.objectStorage.Delete(context, file.ObjectKey); err != nil {
		return apperr.Operation("Failed to delete the stored file.", err)
	}

	if err := service.fileRepository.Delete(context, id); err != nil {
		return fmt.Errorf("file_service_delete_failed: %w", err)
	}

	service.logger.Warn("file_deleted", slog.String("file_id", id))

	return nil
}
