// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package curriculum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/storage"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// Service orchestrates business rules for curricula.
type Service struct {
	repository    Repository
	objectStorage storage.ObjectStorage
	logger        *slog.Logger
}

// NewService constructs a new curriculum [Service].
func NewService(repository Repository, objectStorage storage.ObjectStorage, logger *slog.Logger) *Service {
	return &Service{
		repository:    repository,
		objectStorage: objectStorage,
		logger:        logger,
	}
}

func (service *Service) ListCurricula(context context.Context, subjectID string) ([]*Curriculum, error) {
	exists, err := service.repository.SubjectExists(context, subjectID)
	if err != nil {
		return nil, fmt.Errorf("curriculum_service_subject_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Subject")
	}

	return service.repository.ListBySubject(context, subjectID)
}

func (service *Service) GetCurriculum(context context.Context, id string) (*Curriculum, error) {
	return service.repository.FindByID(context, id)
}

// CreateInput holds the mutable fields of a curriculum.
type CreateInput struct {
	SubjectID   string
	Title       string
	Description string
}

// CreateCurriculum registers a new curriculum under an existing subject.
func (service *Service) CreateCurriculum(context context.Context, input CreateInput) (*Curriculum, error) {
	exists, err := service.repository.SubjectExists(context, input.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("curriculum_service_subject_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Subject")
	}

	curriculum := &Curriculum{
		ID:          uuid.New(),
		SubjectID:   input.SubjectID,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := service.repository.Create(context, curriculum); err != nil {
		return nil, fmt.Errorf("curriculum_service_create_failed: %w", err)
	}

	service.logger.Info("curriculum_created", slog.String("curriculum_id", curriculum.ID))

	return curriculum, nil
}

// UpdateCurriculum modifies an existing curriculum's metadata.
func (service *Service) UpdateCurriculum(context context.Context, id, title, description string) (*Curriculum, error) {
	curriculum, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	curriculum.Title = title
	curriculum.Description = description

	if err := service.repository.Update(context, curriculum); err != nil {
		return nil, fmt.Errorf("curriculum_service_update_failed: %w", err)
	}

	return curriculum, nil
}

/*
DeleteCurriculum removes a curriculum together with every file stored
under it.

Description: The curriculum is fetched first; an absent ID yields 404 and
nothing is touched. The object-storage purge runs BEFORE the row delete
and gates it: if the purge fails the row survives, the client receives
"Failed to delete associated files.", and the whole operation can be
retried safely.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound, the cleanup failure, or storage failures
*/
func (service *Service) DeleteCurriculum(context context.Context, id string) error {
	curriculum, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.objectStorage.DeleteAllByPrefix(context, curriculum.StorageKeyPrefix()); err != nil {
		return apperr.Operation(MsgFileCleanupFailed, err)
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("curriculum_service_delete_failed: %w", err)
	}

	service.logger.Warn("curriculum_deleted", slog.String("curriculum_id", id))

	return nil
}
