// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

// Package department manages academic departments within a college.
package department

import "time"

// Department is a teaching unit belonging to exactly one college.
type Department struct {
	ID        string    `json:"id"`
	CollegeID string    `json:"college_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	FieldName      = "name"
	FieldCollegeID = "college_id"
)
