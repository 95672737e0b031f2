// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package image

import "context"

// Repository defines the persistence contract for image metadata.
type Repository interface {

	// FindByOwner returns the owner's image, or apperr.NotFound.
	FindByOwner(context context.Context, ownerID string) (*Image, error)

	// Upsert stores the metadata row, replacing any previous row for
	// the same owner. The object must already exist in storage.
	Upsert(context context.Context, image *Image) error

	// DeleteByOwner removes the metadata row. Missing rows are ignored
	// so callers can clean up unconditionally.
	DeleteByOwner(context context.Context, ownerID string) error
}
