// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package subject

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/pkg/slug"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// Service orchestrates business rules for subjects.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

func (service *Service) ListSubjects(context context.Context, yearID string, limit, offset int) ([]*Subject, int, error) {
	exists, err := service.repository.YearExists(context, yearID)
	if err != nil {
		return nil, 0, fmt.Errorf("subject_service_year_check_failed: %w", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("Study year")
	}

	return service.repository.ListByYear(context, yearID, limit, offset)
}

func (service *Service) GetSubject(context context.Context, id string) (*Subject, error) {
	return service.repository.FindByID(context, id)
}

// CreateInput holds the mutable fields of a subject.
type CreateInput struct {
	DepartmentID string
	YearID       string
	Name         string
	Description  string
}

// CreateSubject registers a new subject. Both the department and study
// year references must exist (404 otherwise).
func (service *Service) CreateSubject(context context.Context, input CreateInput) (*Subject, error) {
	exists, err := service.repository.DepartmentExists(context, input.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("subject_service_department_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Department")
	}

	exists, err = service.repository.YearExists(context, input.YearID)
	if err != nil {
		return nil, fmt.Errorf("subject_service_year_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Study year")
	}

	subject := &Subject{
		ID:           uuid.New(),
		DepartmentID: input.DepartmentID,
		YearID:       input.YearID,
		Name:         input.Name,
		Description:  input.Description,
	}

	subject.Slug = slug.From(input.Name)
	if subject.Slug == "" {
		subject.Slug = subject.ID
	}

	if err := service.repository.Create(context, subject); err != nil {
		return nil, fmt.Errorf("subject_service_create_failed: %w", err)
	}

	service.logger.Info("subject_created", slog.String("subject_id", subject.ID))

	return subject, nil
}

func (service *Service) UpdateSubject(context context.Context, id, name, description string) (*Subject, error) {
	subject, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	subject.Name = name
	subject.Description = description
	subject.Slug = slug.From(name)
	if subject.Slug == "" {
		subject.Slug = subject.ID
	}

	if err := service.repository.Update(context, subject); err != nil {
		return nil, fmt.Errorf("subject_service_update_failed: %w", err)
	}

	return subject, nil
}

func (service *Service) DeleteSubject(context context.Context, id string) error {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("subject_service_delete_failed: %w", err)
	}

	service.logger.Warn("subject_deleted", slog.String("subject_id", id))

	return nil
}
