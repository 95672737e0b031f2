// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package year

import "context"

// Repository defines the persistence contract for study years.
type Repository interface {
	ListByDepartment(context context.Context, departmentID string) ([]*Year, error)
	FindByID(context context.Context, id string) (*Year, error)
	Create(context context.Context, year *Year) error
	Update(context context.Context, year *Year) error
	Delete(context context.Context, id string) error
	DepartmentExists(context context.Context, departmentID string) (bool, error)
}
