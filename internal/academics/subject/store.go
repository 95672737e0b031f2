// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package subject

import "context"

// Repository defines the persistence contract for subjects.
type Repository interface {
	ListByYear(context context.Context, yearID string, limit, offset int) ([]*Subject, int, error)
	FindByID(context context.Context, id string) (*Subject, error)
	Create(context context.Context, subject *Subject) error
	Update(context context.Context, subject *Subject) error
	Delete(context context.Context, id string) error
	DepartmentExists(context context.Context, departmentID string) (bool, error)
	YearExists(context context.Context, yearID string) (bool, error)
}
