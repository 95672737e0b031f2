// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

// Package year manages study years within a department.
package year

import "time"

// Year is a study year (first year, second year, ...) within a department.
type Year struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"department_id"`
	Number       int       `json:"number"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	FieldName         = "name"
	FieldNumber       = "number"
	FieldDepartmentID = "department_id"
)
