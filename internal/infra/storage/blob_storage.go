package storage

import (
	"context"
	"net/http"
	"time"

	"jobhub/config"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
)

// BlobStorage presigns uploads through a gocloud bucket, which lets local development
// run against a file:// bucket.
type BlobStorage struct {
	bucket   *blob.Bucket
	expiry   time.Duration
	fileBase string
	now      func() time.Time
}

// OpenBlobStorage opens the bucket named by cfg.BucketURL.
func OpenBlobStorage(ctx context.Context, cfg *config.StorageConfig) (*BlobStorage, error) {
	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob bucket")
	}

	return NewBlobStorage(bucket, cfg.UploadURLExpiry, cfg.PublicBaseURL), nil
}

// NewBlobStorage wraps an opened bucket.
func NewBlobStorage(bucket *blob.Bucket, expiry time.Duration, fileBase string) *BlobStorage {
	return &BlobStorage{
		bucket:   bucket,
		expiry:   expiry,
		fileBase: fileBase,
		now:      time.Now,
	}
}

func (s *BlobStorage) PresignUpload(ctx context.Context, key, contentType string) (*service.PresignedUpload, error) {
	uploadURL, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{
		Method:      http.MethodPut,
		Expiry:      s.expiry,
		ContentType: contentType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign upload URL")
	}

	fileURL := key
	if s.fileBase != "" {
		fileURL = joinURL(s.fileBase, key)
	}

	return &service.PresignedUpload{
		UploadURL: uploadURL,
		FileURL:   fileURL,
		Key:       key,
		ExpiresAt: s.now().Add(s.expiry),
	}, nil
}

func (s *BlobStorage) Close() error {
	return s.bucket.Close()
}
