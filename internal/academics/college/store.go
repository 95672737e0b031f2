// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package college

import "context"

// Repository defines the persistence contract for colleges.
type Repository interface {
	ListByUniversity(context context.Context, universityID string, limit, offset int) ([]*College, int, error)
	FindByID(context context.Context, id string) (*College, error)
	Create(context context.Context, college *College) error
	Update(context context.Context, college *College) error
	Delete(context context.Context, id string) error

	// UniversityExists probes the parent row so handlers can 404 before
	// any mutation reaches the table.
	UniversityExists(context context.Context, universityID string) (bool, error)
}
