// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package account

import (
	"context"

	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/users/auth"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the administration contract over user accounts.
type AccountRepository interface {

	// List returns a page of accounts plus the unfiltered total count.
	List(context context.Context, params pagination.Params) ([]*auth.User, int, error)

	// FindByID returns the account with the given ID, or apperr.NotFound.
	FindByID(context context.Context, id string) (*auth.User, error)

	// SetActive flips the is_active flag.
	SetActive(context context.Context, id string, active bool) error

	// AssignRole replaces the account's role.
	AssignRole(context context.Context, id string, role sec.UserRole) error

	// UpdateImageKey replaces the account's profile image reference.
	UpdateImageKey(context context.Context, id, imageKey string) error

	// SoftDelete flags an account as logically deleted.
	SoftDelete(context context.Context, id string) error
}

// ProfileRepository defines the persistence contract for academic profiles.
type ProfileRepository interface {

	// FindDoctor returns the doctor profile for a user, or apperr.NotFound.
	FindDoctor(context context.Context, userID string) (*DoctorProfile, error)

	// UpsertDoctor creates or replaces a doctor profile.
	UpsertDoctor(context context.Context, profile *DoctorProfile) error

	// FindStudent returns the student profile for a user, or apperr.NotFound.
	FindStudent(context context.Context, userID string) (*StudentProfile, error)

	// UpsertStudent creates or replaces a student profile.
	UpsertStudent(context context.Context, profile *StudentProfile) error

	// CollegeExists reports whether the referenced college row exists.
	CollegeExists(context context.Context, id string) (bool, error)

	// DepartmentExists reports whether the referenced department row exists.
	DepartmentExists(context context.Context, id string) (bool, error)

	// YearExists reports whether the referenced study year row exists.
	YearExists(context context.Context, id string) (bool, error)
}

// SessionRevoker is the slice of the auth session contract the account
// service needs when deactivating or deleting an account.
type SessionRevoker interface {
	RevokeAll(context context.Context, userID string) error
}
