// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package file_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex-platform/acadex/internal/content/file"
	"github.com/acadex-platform/acadex/internal/platform/apperr"
)

// # Test Doubles

type memoryFileRepository struct {
	files       map[string]*file.File
	curriculums map[string]bool
	creates     int
	deletes     int
}

func newMemoryFileRepository() *memoryFileRepository {
	return &memoryFileRepository{
		files:       make(map[string]*file.File),
		curriculums: make(map[string]bool),
	}
}

func (repo *memoryFileRepository) ListByCurriculum(_ context.Context, curriculumID string) ([]*file.File, error) {
	var files []*file.File
	for _, stored := range repo.files {
		if stored.CurriculumID == curriculumID {
			files = append(files, stored)
		}
	}
	return files, nil
}

func (repo *memoryFileRepository) FindByID(_ context.Context, id string) (*file.File, error) {
	stored, ok := repo.files[id]
	if !ok {
		return nil, apperr.NotFound("File")
	}
	return stored, nil
}

func (repo *memoryFileRepository) Create(_ context.Context, created *file.File) error {
	repo.creates++
	repo.files[created.ID] = created
	return nil
}

func (repo *memoryFileRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.files[id]; !ok {
		return apperr.NotFound("File")
	}
	repo.deletes++
	delete(repo.files, id)
	return nil
}

func (repo *memoryFileRepository) CurriculumExists(_ context.Context, curriculumID string) (bool, error) {
	return repo.curriculums[curriculumID], nil
}

type recordingRatingRepository struct {
	upserts []*file.Rating
}

func (repo *recordingRatingRepository) Upsert(_ context.Context, rating *file.Rating) error {
	repo.upserts = append(repo.upserts, rating)
	return nil
}

type fakeObjectStorage struct {
	objects    map[string][]byte
	failUpload bool
	failDelete bool
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (storage *fakeObjectStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	if storage.failUpload {
		return errors.New("storage unavailable")
	}
	payload, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	storage.objects[key] = payload
	return nil
}

func (storage *fakeObjectStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	payload, ok := storage.objects[key]
	if !ok {
		return nil, errors.New("object missing")
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

func (storage *fakeObjectStorage) Delete(_ context.Context, key string) error {
	if storage.failDelete {
		return errors.New("storage unavailable")
	}
	delete(storage.objects, key)
	return nil
}

func (storage *fakeObjectStorage) DeleteAllByPrefix(_ context.Context, prefix string) error {
	for key := range storage.objects {
		if strings.HasPrefix(key, prefix) {
			delete(storage.objects, key)
		}
	}
	return nil
}

func (storage *fakeObjectStorage) Ping(_ context.Context) error { return nil }

// # Fixtures

type fixture struct {
	service *file.Service
	files   *memoryFileRepository
	ratings *recordingRatingRepository
	storage *fakeObjectStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	files := newMemoryFileRepository()
	ratings := &recordingRatingRepository{}
	storage := newFakeObjectStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		service: file.NewService(files, ratings, storage, logger),
		files:   files,
		ratings: ratings,
		storage: storage,
	}
}

func (f *fixture) uploadDocument(t *testing.T, curriculumID, name string) *file.File {
	t.Helper()

	f.files.curriculums[curriculumID] = true
	uploaded, err := f.service.Upload(context.Background(), file.UploadInput{
		CurriculumID: curriculumID,
		UploaderID:   "doctor-1",
		Name:         name,
		Reader:       strings.NewReader("lecture notes"),
		SizeBytes:    13,
		ContentType:  "application/pdf",
	})
	require.NoError(t, err)
	return uploaded
}

// # Tests

/*
TestService_Upload verifies the storage-first ordering of uploads: the
metadata row only appears after the bytes are safely stored, and an
unknown curriculum is rejected before anything is written.
*/
func TestService_Upload(t *testing.T) {
	t.Run("unknown_curriculum", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Upload(context.Background(), file.UploadInput{
			CurriculumID: "missing",
			UploaderID:   "doctor-1",
			Name:         "notes.pdf",
			Reader:       strings.NewReader("x"),
			SizeBytes:    1,
			ContentType:  "application/pdf",
		})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
		assert.Empty(t, f.storage.objects)
		assert.Zero(t, f.files.creates)
	})

	t.Run("storage_failure_leaves_no_row", func(t *testing.T) {
		f := newFixture(t)
		f.files.curriculums["curr-1"] = true
		f.storage.failUpload = true

		_, err := f.service.Upload(context.Background(), file.UploadInput{
			CurriculumID: "curr-1",
			UploaderID:   "doctor-1",
			Name:         "notes.pdf",
			Reader:       strings.NewReader("x"),
			SizeBytes:    1,
			ContentType:  "application/pdf",
		})

		require.Error(t, err)
		assert.Zero(t, f.files.creates, "no metadata row after a failed upload")
	})

	t.Run("success_stores_under_curriculum_prefix", func(t *testing.T) {
		f := newFixture(t)

		uploaded := f.uploadDocument(t, "curr-1", "notes.pdf")

		require.Len(t, f.storage.objects, 1)
		assert.Contains(t, f.storage.objects, "curricula/curr-1/"+uploaded.ID)
		assert.Equal(t, 1, f.files.creates)
	})
}

/*
TestService_RateFile verifies that rating an absent file yields 404
without touching the rating store, and that a re-rating reaches the
upsert with the new score.
*/
func TestService_RateFile(t *testing.T) {
	t.Run("unknown_file", func(t *testing.T) {
		f := newFixture(t)

		err := f.service.RateFile(context.Background(), "missing", "student-1", 4)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
		assert.Equal(t, "File not found", appError.Message)
		assert.Empty(t, f.ratings.upserts, "rating write must not run for an absent file")
	})

	t.Run("re_rating_replaces_score", func(t *testing.T) {
		f := newFixture(t)
		uploaded := f.uploadDocument(t, "curr-1", "notes.pdf")

		require.NoError(t, f.service.RateFile(context.Background(), uploaded.ID, "student-1", 2))
		require.NoError(t, f.service.RateFile(context.Background(), uploaded.ID, "student-1", 5))

		require.Len(t, f.ratings.upserts, 2)
		last := f.ratings.upserts[1]
		assert.Equal(t, uploaded.ID, last.FileID)
		assert.Equal(t, "student-1", last.UserID)
		assert.Equal(t, 5, last.Score)
	})
}

/*
TestService_Download verifies that an absent ID is rejected before
storage is consulted and that a stored document streams back intact.
*/
func TestService_Download(t *testing.T) {
	t.Run("unknown_file", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.service.Download(context.Background(), "missing")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	})

	t.Run("streams_stored_bytes", func(t *testing.T) {
		f := newFixture(t)
		uploaded := f.uploadDocument(t, "curr-1", "notes.pdf")

		meta, reader, err := f.service.Download(context.Background(), uploaded.ID)
		require.NoError(t, err)
		defer reader.Close()

		payload, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "lecture notes", string(payload))
		assert.Equal(t, "notes.pdf", meta.Name)
		assert.Equal(t, "application/pdf", meta.ContentType)
	})
}

/*
TestService_Delete verifies that the storage delete gates the row
delete: a storage failure leaves the metadata row intact for retry.
*/
func TestService_Delete(t *testing.T) {
	t.Run("storage_failure_keeps_row", func(t *testing.T) {
		f := newFixture(t)
		uploaded := f.uploadDocument(t, "curr-1", "notes.pdf")
		f.storage.failDelete = true

		err := f.service.Delete(context.Background(), uploaded.ID)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 500, appError.HTTPStatus)
		assert.Equal(t, "Failed to delete the stored file.", appError.Message)
		assert.Zero(t, f.files.deletes, "row must survive a failed storage delete")
		_, findErr := f.files.FindByID(context.Background(), uploaded.ID)
		assert.NoError(t, findErr)
	})

	t.Run("success_removes_object_then_row", func(t *testing.T) {
		f := newFixture(t)
		uploaded := f.uploadDocument(t, "curr-1", "notes.pdf")

		require.NoError(t, f.service.Delete(context.Background(), uploaded.ID))

		assert.Empty(t, f.storage.objects)
		assert.Equal(t, 1, f.files.deletes)
	})
}
