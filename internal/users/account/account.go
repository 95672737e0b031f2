// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package account handles user administration and academic profile management.

It provides the admin surface for managing accounts (activation, role
assignment, soft deletion) and the profile layer that ties a user to the
academic catalogue: doctors belong to a college, students to a department
and study year.

# Architecture

  - Entities: DoctorProfile, StudentProfile.
  - Domain: This package depends on the auth package for the User entity.
  - Storage: Profile images live in object storage; the database only
    keeps the object key.
*/
package account

import (
	"time"
)

// # Domain Entities

// DoctorProfile extends a user account with teaching-staff metadata.
type DoctorProfile struct {
	UserID        string    `json:"user_id"`
	CollegeID     string    `json:"college_id"`
	AcademicTitle string    `json:"academic_title"` // e.g. "Professor", "Assistant Lecturer"
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StudentProfile extends a user account with enrollment metadata.
type StudentProfile struct {
	UserID        string    `json:"user_id"`
	DepartmentID  string    `json:"department_id"`
	YearID        string    `json:"year_id"`
	StudentNumber string    `json:"student_number"` // University-issued enrollment number
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldRole          = "role"
	FieldIsActive      = "is_active"
	FieldCollegeID     = "college_id"
	FieldAcademicTitle = "academic_title"
	FieldDepartmentID  = "department_id"
	FieldYearID        = "year_id"
	FieldStudentNumber = "student_number"
	FieldImage         = "image"
)
