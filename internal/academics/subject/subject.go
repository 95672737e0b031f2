// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

// Package subject manages taught subjects within a department and study year.
package subject

import "time"

// Subject is a course taught to one study year of one department.
type Subject struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"department_id"`
	YearID       string    `json:"year_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldDepartmentID = "department_id"
	FieldYearID       = "year_id"
)
