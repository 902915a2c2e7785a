package storage

import (
	"bytes"
	"context"
	"fmt"

	"storefront/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// minioStore implements ImageStore on a MinIO (or other S3-compatible) bucket.
type minioStore struct {
	client  *minio.Client
	bucket  string
	prefix  string
	baseURL string
	logger  zerolog.Logger
}

// NewMinIOStore connects to MinIO and creates the bucket when it is missing.
func NewMinIOStore(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("component", "minio-image-store").Logger()

	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		logger.Error().Err(err).Str("bucket", cfg.Bucket).Msg("failed to check bucket")
		return nil, fmt.Errorf("failed to check MinIO bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create MinIO bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.MinIOUseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MinIOEndpoint, cfg.Bucket)
	}

	logger.Info().
		Str("endpoint", cfg.MinIOEndpoint).
		Str("bucket", cfg.Bucket).
		Msg("MinIO image store initialised")

	return &minioStore{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

func (s *minioStore) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	key := objectKey(s.prefix, fileName)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to put object to MinIO")
		return "", fmt.Errorf("failed to put object to MinIO (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	return joinURL(s.baseURL, key), nil
}
