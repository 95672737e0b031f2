// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

// Package college manages colleges within a university.
package college

import "time"

// College is a faculty belonging to exactly one university.
type College struct {
	ID           string    `json:"id"`
	UniversityID string    `json:"university_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldUniversityID = "university_id"
)
