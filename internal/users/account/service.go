// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package account

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/platform/storage"
	"github.com/acadex-platform/acadex/internal/users/auth"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # Service Layer

// Service orchestrates account administration and profile management.
type Service struct {
	accountRepository AccountRepository
	profileRepository ProfileRepository
	sessionRevoker    SessionRevoker
	objectStorage     storage.ObjectStorage
	logger            *slog.Logger
}

// NewService constructs a new account [Service] with its dependencies.
func NewService(
	accountRepo AccountRepository,
	profileRepo ProfileRepository,
	sessionRevoker SessionRevoker,
	objectStorage storage.ObjectStorage,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		profileRepository: profileRepo,
		sessionRevoker:    sessionRevoker,
		objectStorage:     objectStorage,
		logger:            logger,
	}
}

// # Administration

/*
ListUsers returns a page of user accounts for the admin console.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total account count for pagination metadata
  - error: Storage failures
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	return service.accountRepository.List(context, params)
}

/*
GetUser retrieves a single account by its ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The account
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GetUser(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

/*
SetActive activates or deactivates an account.

Description: Deactivation also revokes every refresh session so the user's
rotation chain dies immediately rather than at access-token expiry.

Parameters:
  - context: context.Context
  - userID: string
  - active: bool

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) SetActive(context context.Context, userID string, active bool) error {
	if _, err := service.accountRepository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.accountRepository.SetActive(context, userID, active); err != nil {
		return fmt.Errorf("account_service_set_active_failed: %w", err)
	}

	if !active {
		_ = service.sessionRevoker.RevokeAll(context, userID)
	}

	service.logger.Info("user_active_changed",
		slog.String("user_id", userID),
		slog.Bool("active", active),
	)

	return nil
}

/*
AssignRole replaces an account's role.

Description: Existing access tokens keep their embedded role until expiry;
the short access-token lifetime bounds the staleness window.

Parameters:
  - context: context.Context
  - userID: string
  - role: sec.UserRole

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) AssignRole(context context.Context, userID string, role sec.UserRole) error {
	if _, err := service.accountRepository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.accountRepository.AssignRole(context, userID, role); err != nil {
		return fmt.Errorf("account_service_assign_role_failed: %w", err)
	}

	service.logger.Info("user_role_assigned",
		slog.String("user_id", userID),
		slog.String("role", string(role)),
	)

	return nil
}

/*
DeleteUser performs an idempotent soft-deletion of an account.

Description: Flags the account as deleted and terminates all active
sessions to force a global sign-out.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (service *Service) DeleteUser(context context.Context, userID string) error {
	if err := service.accountRepository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	_ = service.sessionRevoker.RevokeAll(context, userID)

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}

// # Profile Image

/*
UploadProfileImage stores a new avatar and updates the account's reference.

Description: The object is written to storage FIRST; the database reference
is only updated after the upload succeeds, so a storage failure can never
leave the account pointing at a missing object.

Parameters:
  - context: context.Context
  - userID: string
  - reader: io.Reader (image bytes)
  - size: int64
  - contentType: string

Returns:
  - string: The stored object key
  - error: apperr.NotFound, upload, or storage failures
*/
func (service *Service) UploadProfileImage(context context.Context, userID string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := service.accountRepository.FindByID(context, userID); err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s", userID)

	if err := service.objectStorage.Upload(context, key, reader, size, contentType); err != nil {
		return "", fmt.Errorf("account_service_image_upload_failed: %w", err)
	}

	if err := service.accountRepository.UpdateImageKey(context, userID, key); err != nil {
		return "", fmt.Errorf("account_service_image_reference_failed: %w", err)
	}

	service.logger.Info("user_image_updated", slog.String("user_id", userID))

	return key, nil
}

// # Academic Profiles

// DoctorProfileInput holds the mutable fields of a doctor profile.
type DoctorProfileInput struct {
	CollegeID     string
	AcademicTitle string
}

/*
GetDoctorProfile retrieves the teaching-staff profile for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *DoctorProfile: The profile
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GetDoctorProfile(context context.Context, userID string) (*DoctorProfile, error) {
	return service.profileRepository.FindDoctor(context, userID)
}

/*
SaveDoctorProfile creates or replaces a doctor profile.

Description: The account must exist and hold at least the doctor role, and
the referenced college must exist (404 otherwise).

Parameters:
  - context: context.Context
  - userID: string
  - input: DoctorProfileInput

Returns:
  - *DoctorProfile: The stored profile
  - error: apperr.NotFound, apperr.Unprocessable, or storage failures
*/
func (service *Service) SaveDoctorProfile(context context.Context, userID string, input DoctorProfileInput) (*DoctorProfile, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if !user.Role.AtLeast(sec.RoleDoctor) {
		return nil, apperr.Unprocessable("Account does not hold a teaching role")
	}

	exists, err := service.profileRepository.CollegeExists(context, input.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("account_service_college_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("College")
	}

	profile := &DoctorProfile{
		UserID:        userID,
		CollegeID:     input.CollegeID,
		AcademicTitle: input.AcademicTitle,
		UpdatedAt:     time.Now(),
	}

	if err := service.profileRepository.UpsertDoctor(context, profile); err != nil {
		return nil, fmt.Errorf("account_service_doctor_profile_failed: %w", err)
	}

	return profile, nil
}

// StudentProfileInput holds the mutable fields of a student profile.
type StudentProfileInput struct {
	DepartmentID  string
	YearID        string
	StudentNumber string
}

/*
GetStudentProfile retrieves the enrollment profile for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *StudentProfile: The profile
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GetStudentProfile(context context.Context, userID string) (*StudentProfile, error) {
	return service.profileRepository.FindStudent(context, userID)
}

/*
SaveStudentProfile creates or replaces a student profile.

Description: The account and the referenced department and study year must
all exist (404 otherwise).

Parameters:
  - context: context.Context
  - userID: string
  - input: StudentProfileInput

Returns:
  - *StudentProfile: The stored profile
  - error: apperr.NotFound or storage failures
*/
func (service *Service) SaveStudentProfile(context context.Context, userID string, input StudentProfileInput) (*StudentProfile, error) {
	if _, err := service.accountRepository.FindByID(context, userID); err != nil {
		return nil, err
	}

	exists, err := service.profileRepository.DepartmentExists(context, input.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("account_service_department_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Department")
	}

	exists, err = service.profileRepository.YearExists(context, input.YearID)
	if err != nil {
		return nil, fmt.Errorf("account_service_year_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Study year")
	}

	profile := &StudentProfile{
		UserID:        userID,
		DepartmentID:  input.DepartmentID,
		YearID:        input.YearID,
		StudentNumber: input.StudentNumber,
		UpdatedAt:     time.Now(),
	}

	if err := service.profileRepository.UpsertStudent(context, profile); err != nil {
		return nil, fmt.Errorf("account_service_student_profile_failed: %w", err)
	}

	return profile, nil
}
