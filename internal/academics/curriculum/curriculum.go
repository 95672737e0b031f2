// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package curriculum manages curricula: named groups of uploaded course
files attached to a subject.

Deleting a curriculum is the one destructive operation in the catalogue
that spans two backends. The object-storage purge runs first and gates
the row delete; a storage failure leaves the row (and the file metadata
under it) fully intact so the operation can be retried.
*/
package curriculum

import "time"

// Curriculum groups the uploaded files of one subject.
type Curriculum struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StorageKeyPrefix returns the object-storage prefix under which every
// file of this curriculum is stored.
func (c *Curriculum) StorageKeyPrefix() string {
	return "curricula/" + c.ID + "/"
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldSubjectID   = "subject_id"
)

// MsgFileCleanupFailed is returned when the object-storage purge blocks a
// curriculum delete.
const MsgFileCleanupFailed = "Failed to delete associated files."
