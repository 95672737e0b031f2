// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package department

import "context"

// Repository defines the persistence contract for departments.
type Repository interface {
	ListByCollege(context context.Context, collegeID string, limit, offset int) ([]*Department, int, error)
	FindByID(context context.Context, id string) (*Department, error)
	Create(context context.Context, department *Department) error
	Update(context context.Context, department *Department) error
	Delete(context context.Context, id string) error
	CollegeExists(context context.Context, collegeID string) (bool, error)
}
