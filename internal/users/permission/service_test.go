// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package permission_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/users/permission"
)

// # Test Doubles

type roleGrantKey struct {
	role         sec.UserRole
	permissionID string
}

type userGrantKey struct {
	userID       string
	permissionID string
}

type memoryRepository struct {
	permissions map[string]*permission.Permission
	roleGrants  map[roleGrantKey]bool
	userGrants  map[userGrantKey]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		permissions: map[string]*permission.Permission{},
		roleGrants:  map[roleGrantKey]bool{},
		userGrants:  map[userGrantKey]bool{},
	}
}

func (r *memoryRepository) List(_ context.Context) ([]*permission.Permission, error) {
	out := make([]*permission.Permission, 0, len(r.permissions))
	for _, p := range r.permissions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*permission.Permission, error) {
	if p, ok := r.permissions[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Permission")
}

func (r *memoryRepository) FindByName(_ context.Context, name string) (*permission.Permission, error) {
	for _, p := range r.permissions {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, apperr.NotFound("Permission")
}

func (r *memoryRepository) Create(_ context.Context, p *permission.Permission) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.permissions[p.ID] = p
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.permissions[id]; !ok {
		return apperr.NotFound("Permission")
	}
	delete(r.permissions, id)
	for key := range r.roleGrants {
		if key.permissionID == id {
			delete(r.roleGrants, key)
		}
	}
	for key := range r.userGrants {
		if key.permissionID == id {
			delete(r.userGrants, key)
		}
	}
	return nil
}

func (r *memoryRepository) GrantToRole(_ context.Context, role sec.UserRole, permissionID string) error {
	r.roleGrants[roleGrantKey{role, permissionID}] = true
	return nil
}

func (r *memoryRepository) RevokeFromRole(_ context.Context, role sec.UserRole, permissionID string) error {
	key := roleGrantKey{role, permissionID}
	if !r.roleGrants[key] {
		return apperr.NotFound("Role grant")
	}
	delete(r.roleGrants, key)
	return nil
}

func (r *memoryRepository) ListForRole(_ context.Context, role sec.UserRole) ([]*permission.Permission, error) {
	out := make([]*permission.Permission, 0)
	for key := range r.roleGrants {
		if key.role == role {
			out = append(out, r.permissions[key.permissionID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) GrantToUser(_ context.Context, userID, permissionID string) error {
	r.userGrants[userGrantKey{userID, permissionID}] = true
	return nil
}

func (r *memoryRepository) RevokeFromUser(_ context.Context, userID, permissionID string) error {
	key := userGrantKey{userID, permissionID}
	if !r.userGrants[key] {
		return apperr.NotFound("User grant")
	}
	delete(r.userGrants, key)
	return nil
}

func (r *memoryRepository) ListEffective(_ context.Context, userID string, role sec.UserRole) ([]*permission.Permission, error) {
	seen := map[string]bool{}
	out := make([]*permission.Permission, 0)
	for key := range r.roleGrants {
		if key.role == role && !seen[key.permissionID] {
			seen[key.permissionID] = true
			out = append(out, r.permissions[key.permissionID])
		}
	}
	for key := range r.userGrants {
		if key.userID == userID && !seen[key.permissionID] {
			seen[key.permissionID] = true
			out = append(out, r.permissions[key.permissionID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) HasGrant(ctx context.Context, userID string, role sec.UserRole, name string) (bool, error) {
	effective, err := r.ListEffective(ctx, userID, role)
	if err != nil {
		return false, err
	}
	for _, p := range effective {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*permission.Service, *memoryRepository) {
	repo := newMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return permission.NewService(repo, logger), repo
}

// # Tests

/*
TestService_CreatePermission verifies capability creation and name uniqueness.
*/
func TestService_CreatePermission(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreatePermission(context.Background(), permission.CreateInput{
		Name:        "files.upload",
		Description: "Upload curriculum documents",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = service.CreatePermission(context.Background(), permission.CreateInput{Name: "files.upload"})
	require.Error(t, err)
	assert.Equal(t, 409, apperr.As(err).HTTPStatus)
}

/*
TestService_HasPermission_Union checks that a capability is held through a
role grant OR a direct user grant, and through nothing else.
*/
func TestService_HasPermission_Union(t *testing.T) {
	service, _ := newTestService()
	background := context.Background()

	upload, err := service.CreatePermission(background, permission.CreateInput{Name: "files.upload"})
	require.NoError(t, err)
	export, err := service.CreatePermission(background, permission.CreateInput{Name: "banks.export"})
	require.NoError(t, err)

	require.NoError(t, service.GrantToRole(background, sec.RoleDoctor, upload.ID))
	require.NoError(t, service.GrantToUser(background, "student-1", export.ID))

	tests := []struct {
		name       string
		userID     string
		role       sec.UserRole
		permission string
		granted    bool
	}{
		{"via_role", "doctor-1", sec.RoleDoctor, "files.upload", true},
		{"via_direct_grant", "student-1", sec.RoleStudent, "banks.export", true},
		{"no_grant", "student-2", sec.RoleStudent, "files.upload", false},
		{"admin_has_no_implicit_bypass", "admin-1", sec.RoleAdmin, "files.upload", false},
		{"unknown_permission", "doctor-1", sec.RoleDoctor, "does.not.exist", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			granted, err := service.HasPermission(background, tt.userID, tt.role, tt.permission)
			require.NoError(t, err)
			assert.Equal(t, tt.granted, granted)
		})
	}
}

/*
TestService_ListEffective checks deduplication when the same capability is
granted both through the role and directly.
*/
func TestService_ListEffective(t *testing.T) {
	service, _ := newTestService()
	background := context.Background()

	upload, err := service.CreatePermission(background, permission.CreateInput{Name: "files.upload"})
	require.NoError(t, err)

	require.NoError(t, service.GrantToRole(background, sec.RoleDoctor, upload.ID))
	require.NoError(t, service.GrantToUser(background, "doctor-1", upload.ID))

	effective, err := service.ListEffective(background, "doctor-1", sec.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, effective, 1)
	assert.Equal(t, "files.upload", effective[0].Name)
}

/*
TestService_GrantValidation checks that granting a nonexistent capability
yields a 404 rather than a storage-level failure.
*/
func TestService_GrantValidation(t *testing.T) {
	service, _ := newTestService()
	background := context.Background()

	err := service.GrantToRole(background, sec.RoleDoctor, "missing-id")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	err = service.GrantToUser(background, "user-1", "missing-id")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_RevokeAndDelete covers grant revocation and cascade on delete.
*/
func TestService_RevokeAndDelete(t *testing.T) {
	service, repo := newTestService()
	background := context.Background()

	upload, err := service.CreatePermission(background, permission.CreateInput{Name: "files.upload"})
	require.NoError(t, err)
	require.NoError(t, service.GrantToRole(background, sec.RoleDoctor, upload.ID))

	require.NoError(t, service.RevokeFromRole(background, sec.RoleDoctor, upload.ID))

	granted, err := service.HasPermission(background, "doctor-1", sec.RoleDoctor, "files.upload")
	require.NoError(t, err)
	assert.False(t, granted)

	// Revoking again surfaces the missing grant.
	err = service.RevokeFromRole(background, sec.RoleDoctor, upload.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, service.GrantToUser(background, "doctor-1", upload.ID))
	require.NoError(t, service.DeletePermission(background, upload.ID))

	assert.Empty(t, repo.userGrants, "deleting a permission removes its grants")
}
