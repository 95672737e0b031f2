// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// pingTimeout bounds the readiness probe against the storage backend.
const pingTimeout = 3 * time.Second

// MinioStorage implements [ObjectStorage] against any S3-compatible endpoint.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// MinioOptions holds the connection parameters for the S3-compatible backend.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// NewMinioStorage connects to the S3-compatible endpoint and verifies the
// bucket exists.
func NewMinioStorage(ctx context.Context, options MinioOptions, logger *slog.Logger) (*MinioStorage, error) {
	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
		Region: options.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, options.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to check bucket %q: %w", options.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("storage: bucket %q does not exist", options.Bucket)
	}

	logger.Info("object storage connected",
		slog.String("endpoint", options.Endpoint),
		slog.String("bucket", options.Bucket),
	)

	return &MinioStorage{client: client, bucket: options.Bucket}, nil
}

/*
Upload stores the reader's content under the given key.

Parameters:
  - ctx: context.Context
  - key: string (Object key, e.g. "files/<curriculumID>/<fileID>")
  - reader: io.Reader
  - size: int64 (Exact content length)
  - contentType: string

Returns:
  - error: Transfer or backend failures
*/
func (storage *MinioStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := storage.client.PutObject(ctx, storage.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("storage: upload of %q failed: %w", key, err)
	}
	return nil
}

/*
Download returns a reader for the object's content. The caller must close it.

Parameters:
  - ctx: context.Context
  - key: string

Returns:
  - io.ReadCloser: Object content stream
  - error: Retrieval failures
*/
func (storage *MinioStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := storage.client.GetObject(ctx, storage.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: download of %q failed: %w", key, err)
	}
	return object, nil
}

/*
Delete removes a single object. Deleting a missing key is not an error.

Parameters:
  - ctx: context.Context
  - key: string

Returns:
  - error: Backend failures
*/
func (storage *MinioStorage) Delete(ctx context.Context, key string) error {
	err := storage.client.RemoveObject(ctx, storage.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("storage: delete of %q failed: %w", key, err)
	}
	return nil
}

/*
DeleteAllByPrefix removes every object whose key starts with prefix.

Description: Streams the object listing and aborts on the first failed
removal, so a partial storage failure surfaces before any dependent
database mutation runs.

Parameters:
  - ctx: context.Context
  - prefix: string (e.g. "files/<curriculumID>/")

Returns:
  - error: Listing or removal failures
*/
func (storage *MinioStorage) DeleteAllByPrefix(ctx context.Context, prefix string) error {
	objects := storage.client.ListObjects(ctx, storage.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("storage: listing prefix %q failed: %w", prefix, object.Err)
		}
		if err := storage.client.RemoveObject(ctx, storage.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("storage: delete of %q failed: %w", object.Key, err)
		}
	}

	return nil
}

// Ping verifies the storage backend is reachable.
func (storage *MinioStorage) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := storage.client.BucketExists(pingCtx, storage.bucket); err != nil {
		return fmt.Errorf("storage: ping failed: %w", err)
	}
	return nil
}
