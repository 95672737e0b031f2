// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package file manages uploaded course documents and their ratings.

Document bytes live in object storage under the owning curriculum's key
prefix; the database keeps only metadata. Every mutation follows the
storage-first ordering: bytes are written or removed in object storage
before the metadata row is touched, so a storage failure never produces
a row pointing at a missing object (or an object with no row reachable
only by a later prefix purge).
*/
package file

import "time"

// # Domain Entities

// File is the metadata row of one uploaded course document.
type File struct {
	ID           string    `json:"id"`
	CurriculumID string    `json:"curriculum_id"`
	UploaderID   string    `json:"uploader_id"`
	Name         string    `json:"name"`
	ObjectKey    string    `json:"-"` // Storage key. Clients download through the API.
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`

	// AverageRating is computed on reads; 0 when the file has no ratings.
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// Rating is one user's score for one file. A user re-rating a file
// replaces their previous score.
type Rating struct {
	FileID    string    `json:"file_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"` // 1 to 5
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldFile         = "file"
	FieldCurriculumID = "curriculum_id"
	FieldScore        = "score"

	MinScore = 1
	MaxScore = 5
)
