// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package curriculum_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex-platform/acadex/internal/academics/curriculum"
	"github.com/acadex-platform/acadex/internal/platform/apperr"
)

// # Test Doubles

type memoryRepository struct {
	curricula map[string]*curriculum.Curriculum
	subjects  map[string]bool
	deletes   int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		curricula: map[string]*curriculum.Curriculum{},
		subjects:  map[string]bool{"subject-1": true},
	}
}

func (r *memoryRepository) ListBySubject(_ context.Context, subjectID string) ([]*curriculum.Curriculum, error) {
	out := make([]*curriculum.Curriculum, 0)
	for _, c := range r.curricula {
		if c.SubjectID == subjectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*curriculum.Curriculum, error) {
	if c, ok := r.curricula[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Curriculum")
}

func (r *memoryRepository) Create(_ context.Context, c *curriculum.Curriculum) error {
	r.curricula[c.ID] = c
	return nil
}

func (r *memoryRepository) Update(_ context.Context, c *curriculum.Curriculum) error {
	if _, ok := r.curricula[c.ID]; !ok {
		return apperr.NotFound("Curriculum")
	}
	r.curricula[c.ID] = c
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.deletes++
	if _, ok := r.curricula[id]; !ok {
		return apperr.NotFound("Curriculum")
	}
	delete(r.curricula, id)
	return nil
}

func (r *memoryRepository) SubjectExists(_ context.Context, subjectID string) (bool, error) {
	return r.subjects[subjectID], nil
}

type prefixStorage struct {
	objects     map[string]bool
	failPurge   bool
	purgeCalled int
}

func newPrefixStorage() *prefixStorage {
	return &prefixStorage{objects: map[string]bool{}}
}

func (s *prefixStorage) Upload(_ context.Context, key string, _ io.Reader, _ int64, _ string) error {
	s.objects[key] = true
	return nil
}

func (s *prefixStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	if !s.objects[key] {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader("content")), nil
}

func (s *prefixStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *prefixStorage) DeleteAllByPrefix(_ context.Context, prefix string) error {
	s.purgeCalled++
	if s.failPurge {
		return errors.New("storage unavailable")
	}
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	return nil
}

func (s *prefixStorage) Ping(_ context.Context) error { return nil }

func newTestService() (*curriculum.Service, *memoryRepository, *prefixStorage) {
	repo := newMemoryRepository()
	store := newPrefixStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return curriculum.NewService(repo, store, logger), repo, store
}

// # Tests

/*
TestService_CreateCurriculum verifies the subject reference check.
*/
func TestService_CreateCurriculum(t *testing.T) {
	service, _, _ := newTestService()
	background := context.Background()

	t.Run("unknown_subject", func(t *testing.T) {
		_, err := service.CreateCurriculum(background, curriculum.CreateInput{
			SubjectID: "ghost",
			Title:     "Anatomy I",
		})
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("success", func(t *testing.T) {
		created, err := service.CreateCurriculum(background, curriculum.CreateInput{
			SubjectID: "subject-1",
			Title:     "Anatomy I",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "curricula/"+created.ID+"/", created.StorageKeyPrefix())
	})
}

/*
TestService_DeleteCurriculum exercises the purge-before-row ordering:
the storage purge must succeed before the row delete runs, and a purge
failure blocks the row delete entirely.
*/
func TestService_DeleteCurriculum(t *testing.T) {
	service, repo, store := newTestService()
	background := context.Background()

	created, err := service.CreateCurriculum(background, curriculum.CreateInput{
		SubjectID: "subject-1",
		Title:     "Anatomy I",
	})
	require.NoError(t, err)

	// Two files under the curriculum prefix, one unrelated object.
	store.objects[created.StorageKeyPrefix()+"file-1"] = true
	store.objects[created.StorageKeyPrefix()+"file-2"] = true
	store.objects["avatars/user-1"] = true

	t.Run("unknown_curriculum", func(t *testing.T) {
		err := service.DeleteCurriculum(background, "ghost")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
		assert.Zero(t, store.purgeCalled, "a 404 must not reach storage")
	})

	t.Run("purge_failure_blocks_row_delete", func(t *testing.T) {
		store.failPurge = true

		err := service.DeleteCurriculum(background, created.ID)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 500, ae.HTTPStatus)
		assert.Equal(t, "Failed to delete associated files.", ae.Message)

		assert.Zero(t, repo.deletes, "row delete must never run after a failed purge")
		assert.Contains(t, repo.curricula, created.ID)
	})

	t.Run("success_purges_then_deletes", func(t *testing.T) {
		store.failPurge = false

		require.NoError(t, service.DeleteCurriculum(background, created.ID))

		assert.NotContains(t, repo.curricula, created.ID)
		assert.NotContains(t, store.objects, created.StorageKeyPrefix()+"file-1")
		assert.NotContains(t, store.objects, created.StorageKeyPrefix()+"file-2")
		assert.Contains(t, store.objects, "avatars/user-1", "unrelated objects survive")
	})
}

/*
TestService_UpdateCurriculum verifies fetch-before-mutate.
*/
func TestService_UpdateCurriculum(t *testing.T) {
	service, _, _ := newTestService()
	background := context.Background()

	_, err := service.UpdateCurriculum(background, "ghost", "New Title", "")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	created, err := service.CreateCurriculum(background, curriculum.CreateInput{
		SubjectID: "subject-1",
		Title:     "Anatomy I",
	})
	require.NoError(t, err)

	updated, err := service.UpdateCurriculum(background, created.ID, "Anatomy II", "Second semester")
	require.NoError(t, err)
	assert.Equal(t, "Anatomy II", updated.Title)
}
