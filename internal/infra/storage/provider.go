// Package storage implements presigned uploads for profile pictures and resumes.
package storage

import (
	"context"
	"log/slog"
	"strings"

	"jobhub/config"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"

	"go.uber.org/fx"
)

// unavailableStorage is used when no storage provider is configured
type unavailableStorage struct {
	logger *slog.Logger
}

func (s *unavailableStorage) PresignUpload(ctx context.Context, key, _ string) (*service.PresignedUpload, error) {
	s.logger.WarnContext(ctx, "Upload requested but storage is not configured", slog.String("key", key))

	return nil, domainerrors.ErrUploadUnavailable
}

// Params holds dependencies for FileStorage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewFileStorage creates a FileStorage based on configuration
func NewFileStorage(params Params) (service.FileStorage, error) {
	cfg := params.Config.Storage
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Storage not configured, uploads are disabled")

		return &unavailableStorage{logger: logger}, nil
	}

	switch cfg.Provider {
	case config.StorageProviderS3:
		if cfg.Bucket == "" || cfg.Region == "" {
			return nil, errors.New("bucket and region are required for s3 provider")
		}
		logger.Info("Using S3 presigned uploads",
			slog.String("bucket", cfg.Bucket),
			slog.String("region", cfg.Region),
			slog.String("endpoint", cfg.Endpoint),
		)

		return NewS3Storage(context.Background(), cfg)

	case config.StorageProviderBlob:
		if cfg.BucketURL == "" {
			return nil, errors.New("bucketUrl is required for blob provider")
		}
		logger.Info("Using blob bucket uploads", slog.String("bucket_url", cfg.BucketURL))

		storage, err := OpenBlobStorage(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return storage.Close()
			},
		})

		return storage, nil

	default:
		return nil, errors.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}

// joinURL joins a base URL and an object key with exactly one slash.
func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
