package storage

import (
	"context"
	"fmt"
	"time"

	"jobhub/config"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage presigns PUT requests against an S3 compatible bucket.
type S3Storage struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
	fileBase  string
	now       func() time.Time
}

// NewS3Storage builds the presign client. Static credentials are used when configured,
// otherwise the default AWS credential chain applies.
func NewS3Storage(ctx context.Context, cfg *config.StorageConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		expiry:    cfg.UploadURLExpiry,
		fileBase:  s3FileBase(cfg),
		now:       time.Now,
	}, nil
}

// s3FileBase is the public prefix of stored objects: the configured override, the
// path-style custom endpoint, or the virtual-hosted AWS URL.
func s3FileBase(cfg *config.StorageConfig) string {
	switch {
	case cfg.PublicBaseURL != "":
		return cfg.PublicBaseURL
	case cfg.Endpoint != "":
		return joinURL(cfg.Endpoint, cfg.Bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (s *S3Storage) PresignUpload(ctx context.Context, key, contentType string) (*service.PresignedUpload, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := s.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return nil, errors.Wrap(err, "failed to presign upload")
	}

	return &service.PresignedUpload{
		UploadURL: req.URL,
		FileURL:   joinURL(s.fileBase, key),
		Key:       key,
		ExpiresAt: s.now().Add(s.expiry),
	}, nil
}
