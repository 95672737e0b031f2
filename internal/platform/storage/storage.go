// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package storage provides the object-storage abstraction for uploaded
documents and images.

Architecture:

  - ObjectStorage: the contract consumed by domain services (files, images,
    curricula). Services never see bucket names or client types.
  - MinIO implementation: talks to any S3-compatible endpoint (MinIO,
    Cloudflare R2, AWS S3).

Ordering invariant: domain services always perform the storage-layer
mutation BEFORE the persistence-layer mutation. A failed upload never
leaves a dangling database reference; a failed bulk delete blocks the
row delete that would orphan the objects.
*/
package storage

import (
	"context"
	"io"
)

// ObjectStorage is the contract for binary blob storage.
type ObjectStorage interface {

	// Upload stores the reader's content under the given key.
	// The size must be known up front (multipart uploads carry it).
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download returns a reader for the object's content.
	// The caller owns the reader and must close it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a single object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteAllByPrefix removes every object whose key starts with prefix.
	// Used when a curriculum and all of its files are deleted together.
	DeleteAllByPrefix(ctx context.Context, prefix string) error

	// Ping verifies the storage backend is reachable (readiness probes).
	Ping(ctx context.Context) error
}
