// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package year

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// Service orchestrates business rules for study years.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

func (service *Service) ListYears(context context.Context, departmentID string) ([]*Year, error) {
	exists, err := service.repository.DepartmentExists(context, departmentID)
	if err != nil {
		return nil, fmt.Errorf("year_service_parent_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Department")
	}

	return service.repository.ListByDepartment(context, departmentID)
}

func (service *Service) GetYear(context context.Context, id string) (*Year, error) {
	return service.repository.FindByID(context, id)
}

func (service *Service) CreateYear(context context.Context, departmentID string, number int, name string) (*Year, error) {
	exists, err := service.repository.DepartmentExists(context, departmentID)
	if err != nil {
		return nil, fmt.Errorf("year_service_parent_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Department")
	}

	year := &Year{
		ID:           uuid.New(),
		DepartmentID: departmentID,
		Number:       number,
		Name:         name,
	}

	if err := service.repository.Create(context, year); err != nil {
		return nil, fmt.Errorf("year_service_create_failed: %w", err)
	}

	service.logger.Info("year_created", slog.String("year_id", year.ID))

	return year, nil
}

func (service *Service) UpdateYear(context context.Context, id string, number int, name string) (*Year, error) {
	year, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	year.Number = number
	year.Name = name

	if err := service.repository.Update(context, year); err != nil {
		return nil, fmt.Errorf("year_service_update_failed: %w", err)
	}

	return year, nil
}

func (service *Service) DeleteYear(context context.Context, id string) error {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("year_service_delete_failed: %w", err)
	}

	service.logger.Warn("year_deleted", slog.String("year_id", id))

	return nil
}
