// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package image_test

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

	"github.com/acadex-platform/acadex/internal/content/image"
	"github.com/acadex-platform/acadex/internal/platform/apperr"
)

type memoryRepository struct {
	rows map[string]*image.Image
}

func (repo *memoryRepository) FindByOwner(_ context.Context, ownerID string) (*image.Image, error) {
	stored, ok := repo.rows[ownerID]
	if !ok {
		return nil, apperr.NotFound("Image")
	}
	return stored, nil
}

func (repo *memoryRepository) Upsert(_ context.Context, stored *image.Image) error {
	repo.rows[stored.OwnerID] = stored
	return nil
}

func (repo *memoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	delete(repo.rows, ownerID)
	return nil
}

type fakeObjectStorage struct {
	objects    map[string][]byte
	failUpload bool
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

func newService(t *testing.T) (*image.Service, *memoryRepository, *fakeObjectStorage) {
	t.Helper()

	repo := &memoryRepository{rows: make(map[string]*image.Image)}
	objects := &fakeObjectStorage{objects: make(map[string][]byte)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return image.NewService(repo, objects, logger), repo, objects
}

/*
TestService_Store verifies the stable per-owner key, the overwrite
behavior of a second store, and that a storage failure leaves no row.
*/
func TestService_Store(t *testing.T) {
	t.Run("stores_under_owner_key", func(t *testing.T) {
		service, repo, objects := newService(t)

		key, err := service.Store(context.Background(), "univ-1", strings.NewReader("png"), 3, "image/png")

		require.NoError(t, err)
		assert.Equal(t, "logos/univ-1", key)
		assert.Contains(t, objects.objects, key)
		require.Contains(t, repo.rows, "univ-1")
		assert.Equal(t, "image/png", repo.rows["univ-1"].ContentType)
	})

	t.Run("second_store_overwrites_in_place", func(t *testing.T) {
		service, repo, objects := newService(t)

		_, err := service.Store(context.Background(), "univ-1", strings.NewReader("old"), 3, "image/png")
		require.NoError(t, err)
		key, err := service.Store(context.Background(), "univ-1", strings.NewReader("new!"), 4, "image/webp")
		require.NoError(t, err)

		assert.Len(t, objects.objects, 1, "re-storing must not orphan the previous object")
		assert.Equal(t, "new!", string(objects.objects[key]))
		assert.Equal(t, "image/webp", repo.rows["univ-1"].ContentType)
	})

	t.Run("storage_failure_leaves_no_row", func(t *testing.T) {
		service, repo, objects := newService(t)
		objects.failUpload = true

		_, err := service.Store(context.Background(), "univ-1", strings.NewReader("png"), 3, "image/png")

		require.Error(t, err)
		assert.Empty(t, repo.rows)
	})
}

/*
TestService_Download verifies the 404 path and a round trip through
storage.
*/
func TestService_Download(t *testing.T) {
	t.Run("unknown_owner", func(t *testing.T) {
		service, _, _ := newService(t)

		_, _, err := service.Download(context.Background(), "missing")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	})

	t.Run("round_trip", func(t *testing.T) {
		service, _, _ := newService(t)
		_, err := service.Store(context.Background(), "univ-1", strings.NewReader("png-bytes"), 9, "image/png")
		require.NoError(t, err)

		meta, reader, err := service.Download(context.Background(), "univ-1")
		require.NoError(t, err)
		defer reader.Close()

		payload, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(payload))
		assert.Equal(t, "image/png", meta.ContentType)
	})
}

/*
TestService_Remove verifies storage and row both go, and a second
remove yields 404.
*/
func TestService_Remove(t *testing.T) {
	service, repo, objects := newService(t)
	_, err := service.Store(context.Background(), "univ-1", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)

	require.NoError(t, service.Remove(context.Background(), "univ-1"))

	assert.Empty(t, objects.objects)
	assert.Empty(t, repo.rows)

	err = service.Remove(context.Background(), "univ-1")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}
