// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package university

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/pkg/slug"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// LogoStore persists logo images and returns the stored object key.
// Satisfied by the image service; the object is written to storage before
// this call returns, so the reference update below can never dangle.
type LogoStore interface {
	Store(context context.Context, ownerID string, reader io.Reader, size int64, contentType string) (string, error)
}

// Service orchestrates business rules for universities.
type Service struct {
	repository Repository
	logos      LogoStore
	logger     *slog.Logger
}

// NewService constructs a new university [Service].
func NewService(repository Repository, logos LogoStore, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logos:      logos,
		logger:     logger,
	}
}

func (service *Service) ListUniversities(context context.Context, limit, offset int) ([]*University, int, error) {
	return service.repository.List(context, limit, offset)
}

// GetUniversity resolves by UUID or slug.
func (service *Service) GetUniversity(context context.Context, identifier string) (*University, error) {

	// UUIDs have a fixed length of 36 characters in standard hyphenated format.
	if len(identifier) == 36 {
		return service.repository.FindByID(context, identifier)
	}

	return service.repository.FindBySlug(context, identifier)
}

// CreateInput holds the mutable fields of a university.
type CreateInput struct {
	Name        string
	Description string
}

/*
CreateUniversity registers a new university.

Description: The slug is derived from the name; names that produce no
Latin slug (e.g. Arabic-only) fall back to the entity ID.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *University: Created entity
  - error: Conflict or storage failures
*/
func (service *Service) CreateUniversity(context context.Context, input CreateInput) (*University, error) {
	university := &University{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}

	university.Slug = slug.From(input.Name)
	if university.Slug == "" {
		university.Slug = university.ID
	}

	if _, err := service.repository.FindBySlug(context, university.Slug); err == nil {
		return nil, apperr.Conflict("A university with a similar name already exists")
	}

	if err := service.repository.Create(context, university); err != nil {
		return nil, fmt.Errorf("university_service_create_failed: %w", err)
	}

	service.logger.Info("university_created", slog.String("university_id", university.ID))

	return university, nil
}

/*
UpdateUniversity modifies an existing university.

Description: The entity is fetched first; an absent ID yields 404 and no
mutation is attempted.

Parameters:
  - context: context.Context
  - id: string
  - input: CreateInput

Returns:
  - *University: Updated entity
  - error: apperr.NotFound or storage failures
*/
func (service *Service) UpdateUniversity(context context.Context, id string, input CreateInput) (*University, error) {
	university, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	university.Name = input.Name
	university.Description = input.Description
	university.Slug = slug.From(input.Name)
	if university.Slug == "" {
		university.Slug = university.ID
	}

	if err := service.repository.Update(context, university); err != nil {
		return nil, fmt.Errorf("university_service_update_failed: %w", err)
	}

	return university, nil
}

/*
UploadLogo stores a new logo image and updates the university's reference.

Description: The image bytes reach object storage FIRST; only then is the
logo reference updated. A failed upload leaves the old logo intact.

Parameters:
  - context: context.Context
  - id: string
  - reader: io.Reader
  - size: int64
  - contentType: string

Returns:
  - string: Stored object key
  - error: apperr.NotFound, upload, or storage failures
*/
func (service *Service) UploadLogo(context context.Context, id string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return "", err
	}

	key, err := service.logos.Store(context, id, reader, size, contentType)
	if err != nil {
		return "", fmt.Errorf("university_service_logo_upload_failed: %w", err)
	}

	if err := service.repository.UpdateLogoKey(context, id, key); err != nil {
		return "", fmt.Errorf("university_service_logo_reference_failed: %w", err)
	}

	return key, nil
}

/*
DeleteUniversity removes a university from the catalogue.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) DeleteUniversity(context context.Context, id string) error {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("university_service_delete_failed: %w", err)
	}

	service.logger.Warn("university_deleted", slog.String("university_id", id))

	return nil
}
