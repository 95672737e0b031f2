// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package curriculum

import "context"

// Repository defines the persistence contract for curricula.
type Repository interface {
	ListBySubject(context context.Context, subjectID string) ([]*Curriculum, error)
	FindByID(context context.Context, id string) (*Curriculum, error)
	Create(context context.Context, curriculum *Curriculum) error
	Update(context context.Context, curriculum *Curriculum) error

	// Delete removes the curriculum row; file metadata rows cascade away
	// via the foreign key. Callers must purge object storage first.
	Delete(context context.Context, id string) error

	SubjectExists(context context.Context, subjectID string) (bool, error)
}
