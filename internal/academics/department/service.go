// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package department

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/pkg/slug"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// Service orchestrates business rules for departments.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

func (service *Service) ListDepartments(context context.Context, collegeID string, limit, offset int) ([]*Department, int, error) {
	exists, err := service.repository.CollegeExists(context, collegeID)
	if err != nil {
		return nil, 0, fmt.Errorf("department_service_parent_check_failed: %w", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("College")
	}

	return service.repository.ListByCollege(context, collegeID, limit, offset)
}

func (service *Service) GetDepartment(context context.Context, id string) (*Department, error) {
	return service.repository.FindByID(context, id)
}

// CreateDepartment registers a new department under an existing college.
func (service *Service) CreateDepartment(context context.Context, collegeID, name string) (*Department, error) {
	exists, err := service.repository.CollegeExists(context, collegeID)
	if err != nil {
		return nil, fmt.Errorf("department_service_parent_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("College")
	}

	department := &Department{
		ID:        uuid.New(),
		CollegeID: collegeID,
		Name:      name,
	}

	department.Slug = slug.From(name)
	if department.Slug == "" {
		department.Slug = department.ID
	}

	if err := service.repository.Create(context, department); err != nil {
		return nil, fmt.Errorf("department_service_create_failed: %w", err)
	}

	service.logger.Info("department_created", slog.String("department_id", department.ID))

	return department, nil
}

func (service *Service) UpdateDepartment(context context.Context, id, name string) (*Department, error) {
	department, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	department.Name = name
	department.Slug = slug.From(name)
	if department.Slug == "" {
		department.Slug = department.ID
	}

	if err := service.repository.Update(context, department); err != nil {
		return nil, fmt.Errorf("department_service_update_failed: %w", err)
	}

	return department, nil
}

func (service *Service) DeleteDepartment(context context.Context, id string) error {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("department_service_delete_failed: %w", err)
	}

	service.logger.Warn("department_deleted", slog.String("department_id", id))

	return nil
}
