// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package account_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/users/account"
	"github.com/acadex-platform/acadex/internal/users/auth"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # Test Doubles

type memoryAccountRepository struct {
	users map[string]*auth.User
}

func (r *memoryAccountRepository) List(_ context.Context, params pagination.Params) ([]*auth.User, int, error) {
	out := make([]*auth.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, len(r.users), nil
}

func (r *memoryAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryAccountRepository) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	u.IsActive = active
	return nil
}

func (r *memoryAccountRepository) AssignRole(_ context.Context, id string, role sec.UserRole) error {
	u, ok := r.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	u.Role = role
	return nil
}

func (r *memoryAccountRepository) UpdateImageKey(_ context.Context, id, imageKey string) error {
	u, ok := r.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	u.ImageKey = imageKey
	return nil
}

func (r *memoryAccountRepository) SoftDelete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type memoryProfileRepository struct {
	doctors     map[string]*account.DoctorProfile
	students    map[string]*account.StudentProfile
	colleges    map[string]bool
	departments map[string]bool
	years       map[string]bool
}

func (r *memoryProfileRepository) FindDoctor(_ context.Context, userID string) (*account.DoctorProfile, error) {
	if p, ok := r.doctors[userID]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Doctor profile")
}

func (r *memoryProfileRepository) UpsertDoctor(_ context.Context, p *account.DoctorProfile) error {
	r.doctors[p.UserID] = p
	return nil
}

func (r *memoryProfileRepository) FindStudent(_ context.Context, userID string) (*account.StudentProfile, error) {
	if p, ok := r.students[userID]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Student profile")
}

func (r *memoryProfileRepository) UpsertStudent(_ context.Context, p *account.StudentProfile) error {
	r.students[p.UserID] = p
	return nil
}

func (r *memoryProfileRepository) CollegeExists(_ context.Context, id string) (bool, error) {
	return r.colleges[id], nil
}

func (r *memoryProfileRepository) DepartmentExists(_ context.Context, id string) (bool, error) {
	return r.departments[id], nil
}

func (r *memoryProfileRepository) YearExists(_ context.Context, id string) (bool, error) {
	return r.years[id], nil
}

type recordingRevoker struct {
	revokedUserIDs []string
}

func (r *recordingRevoker) RevokeAll(_ context.Context, userID string) error {
	r.revokedUserIDs = append(r.revokedUserIDs, userID)
	return nil
}

type fakeStorage struct {
	uploads  map[string][]byte
	failNext bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	if s.failNext {
		s.failNext = false
		return errors.New("storage unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.uploads[key] = data
	return nil
}

func (s *fakeStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.uploads[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.uploads, key)
	return nil
}

func (s *fakeStorage) DeleteAllByPrefix(_ context.Context, prefix string) error {
	for key := range s.uploads {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.uploads, key)
		}
	}
	return nil
}

func (s *fakeStorage) Ping(_ context.Context) error { return nil }

// # Fixtures

type accountFixture struct {
	service  *account.Service
	accounts *memoryAccountRepository
	profiles *memoryProfileRepository
	revoker  *recordingRevoker
	storage  *fakeStorage
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	accounts := &memoryAccountRepository{users: map[string]*auth.User{
		"doctor-1":  {ID: "doctor-1", Username: "drfoo", Role: sec.RoleDoctor, IsActive: true},
		"student-1": {ID: "student-1", Username: "stu", Role: sec.RoleStudent, IsActive: true},
	}}
	profiles := &memoryProfileRepository{
		doctors:     map[string]*account.DoctorProfile{},
		students:    map[string]*account.StudentProfile{},
		colleges:    map[string]bool{"college-1": true},
		departments: map[string]bool{"dept-1": true},
		years:       map[string]bool{"year-1": true},
	}
	revoker := &recordingRevoker{}
	storage := newFakeStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &accountFixture{
		service:  account.NewService(accounts, profiles, revoker, storage, logger),
		accounts: accounts,
		profiles: profiles,
		revoker:  revoker,
		storage:  storage,
	}
}

// # Tests

/*
TestService_SetActive checks the deactivation side effect: all refresh
sessions of a deactivated account are revoked.
*/
func TestService_SetActive(t *testing.T) {
	fixture := newAccountFixture(t)
	background := context.Background()

	require.NoError(t, fixture.service.SetActive(background, "student-1", false))
	assert.False(t, fixture.accounts.users["student-1"].IsActive)
	assert.Equal(t, []string{"student-1"}, fixture.revoker.revokedUserIDs)

	// Reactivation does not revoke anything further.
	require.NoError(t, fixture.service.SetActive(background, "student-1", true))
	assert.Len(t, fixture.revoker.revokedUserIDs, 1)

	err := fixture.service.SetActive(background, "ghost", false)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_UploadProfileImage verifies the storage-before-reference
ordering: when the upload fails, the account's image key is untouched.
*/
func TestService_UploadProfileImage(t *testing.T) {
	fixture := newAccountFixture(t)
	background := context.Background()

	t.Run("storage_failure_leaves_no_reference", func(t *testing.T) {
		fixture.storage.failNext = true

		_, err := fixture.service.UploadProfileImage(background, "student-1", bytes.NewReader([]byte("png")), 3, "image/png")
		require.Error(t, err)
		assert.Empty(t, fixture.accounts.users["student-1"].ImageKey)
	})

	t.Run("success_updates_reference", func(t *testing.T) {
		key, err := fixture.service.UploadProfileImage(background, "student-1", bytes.NewReader([]byte("png")), 3, "image/png")
		require.NoError(t, err)
		assert.Equal(t, key, fixture.accounts.users["student-1"].ImageKey)
		assert.Contains(t, fixture.storage.uploads, key)
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := fixture.service.UploadProfileImage(background, "ghost", bytes.NewReader(nil), 0, "image/png")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

/*
TestService_SaveDoctorProfile covers role and college reference checks.
*/
func TestService_SaveDoctorProfile(t *testing.T) {
	fixture := newAccountFixture(t)
	background := context.Background()

	t.Run("unknown_college", func(t *testing.T) {
		_, err := fixture.service.SaveDoctorProfile(background, "doctor-1", account.DoctorProfileInput{
			CollegeID:     "missing",
			AcademicTitle: "Professor",
		})
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("student_role_rejected", func(t *testing.T) {
		_, err := fixture.service.SaveDoctorProfile(background, "student-1", account.DoctorProfileInput{
			CollegeID:     "college-1",
			AcademicTitle: "Professor",
		})
		require.Error(t, err)
		assert.Equal(t, 422, apperr.As(err).HTTPStatus)
	})

	t.Run("success", func(t *testing.T) {
		profile, err := fixture.service.SaveDoctorProfile(background, "doctor-1", account.DoctorProfileInput{
			CollegeID:     "college-1",
			AcademicTitle: "Assistant Lecturer",
		})
		require.NoError(t, err)
		assert.Equal(t, "college-1", profile.CollegeID)

		stored, err := fixture.service.GetDoctorProfile(background, "doctor-1")
		require.NoError(t, err)
		assert.Equal(t, "Assistant Lecturer", stored.AcademicTitle)
	})
}

/*
TestService_SaveStudentProfile covers department and year reference checks.
*/
func TestService_SaveStudentProfile(t *testing.T) {
	fixture := newAccountFixture(t)
	background := context.Background()

	tests := []struct {
		name         string
		departmentID string
		yearID       string
		wantErr      bool
	}{
		{"unknown_department", "missing", "year-1", true},
		{"unknown_year", "dept-1", "missing", true},
		{"success", "dept-1", "year-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.SaveStudentProfile(background, "student-1", account.StudentProfileInput{
				DepartmentID:  tt.departmentID,
				YearID:        tt.yearID,
				StudentNumber: "20260042",
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsNotFound(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

/*
TestService_DeleteUser checks the forced global sign-out on deletion.
*/
func TestService_DeleteUser(t *testing.T) {
	fixture := newAccountFixture(t)

	require.NoError(t, fixture.service.DeleteUser(context.Background(), "student-1"))
	assert.Contains(t, fixture.revoker.revokedUserIDs, "student-1")

	_, err := fixture.service.GetUser(context.Background(), "student-1")
	require.Error(t, err)
}
