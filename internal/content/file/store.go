// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package file

import "context"

// # Data Access Contracts

// FileRepository defines the persistence contract for file metadata.
type FileRepository interface {

	// ListByCurriculum returns all files of a curriculum, newest first,
	// with rating aggregates populated.
	ListByCurriculum(context context.Context, curriculumID string) ([]*File, error)

	// FindByID returns one file with rating aggregates, or apperr.NotFound.
	FindByID(context context.Context, id string) (*File, error)

	// Create persists a new metadata row. The object must already exist
	// in storage.
	Create(context context.Context, file *File) error

	// Delete removes the metadata row. The object must already be gone
	// from storage.
	Delete(context context.Context, id string) error

	// CurriculumExists probes the owning curriculum row.
	CurriculumExists(context context.Context, curriculumID string) (bool, error)
}

// RatingRepository defines the persistence contract for file ratings.
type RatingRepository interface {

	// Upsert stores the user's score, replacing any previous score for
	// the same file.
	Upsert(context context.Context, rating *Rating) error
}
