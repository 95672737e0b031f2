// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package university

import "context"

// Repository defines the persistence contract for universities.
type Repository interface {
	List(context context.Context, limit, offset int) ([]*University, int, error)
	FindByID(context context.Context, id string) (*University, error)
	FindBySlug(context context.Context, slug string) (*University, error)
	Create(context context.Context, university *University) error
	Update(context context.Context, university *University) error
	UpdateLogoKey(context context.Context, id, logoKey string) error
	Delete(context context.Context, id string) error
}
