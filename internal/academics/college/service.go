// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package college

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/pkg/slug"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// Service orchestrates business rules for colleges.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

func (service *Service) ListColleges(context context.Context, universityID string, limit, offset int) ([]*College, int, error) {
	exists, err := service.repository.UniversityExists(context, universityID)
	if err != nil {
		return nil, 0, fmt.Errorf("college_service_parent_check_failed: %w", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("University")
	}

	return service.repository.ListByUniversity(context, universityID, limit, offset)
}

func (service *Service) GetCollege(context context.Context, id string) (*College, error) {
	return service.repository.FindByID(context, id)
}

// CreateInput holds the mutable fields of a college.
type CreateInput struct {
	UniversityID string
	Name         string
	Description  string
}

// CreateCollege registers a new college under an existing university.
// An absent parent yields 404 and no insert is attempted.
func (service *Service) CreateCollege(context context.Context, input CreateInput) (*College, error) {
	exists, err := service.repository.UniversityExists(context, input.UniversityID)
	if err != nil {
		return nil, fmt.Errorf("college_service_parent_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("University")
	}

	college := &College{
		ID:           uuid.New(),
		UniversityID: input.UniversityID,
		Name:         input.Name,
		Description:  input.Description,
	}

	college.Slug = slug.From(input.Name)
	if college.Slug == "" {
		college.Slug = college.ID
	}

	if err := service.repository.Create(context, college); err != nil {
		return nil, fmt.Errorf("college_service_create_failed: %w", err)
	}

	service.logger.Info("college_created", slog.String("college_id", college.ID))

	return college, nil
}

// UpdateCollege modifies an existing college. The entity is fetched first;
// an absent ID yields 404 and no mutation is attempted.
func (service *Service) UpdateCollege(context context.Context, id string, name, description string) (*College, error) {
	college, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	college.Name = name
	college.Description = description
	college.Slug = slug.From(name)
	if college.Slug == "" {
		college.Slug = college.ID
	}

	if err := service.repository.Update(context, college); err != nil {
		return nil, fmt.Errorf("college_service_update_failed: %w", err)
	}

	return college, nil
}

func (service *Service) DeleteCollege(context context.Context, id string) error {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("college_service_delete_failed: %w", err)
	}

	service.logger.Warn("college_deleted", slog.String("college_id", id))

	return nil
}
