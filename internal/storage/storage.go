package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"storefront/internal/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ImageStore persists product images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

// New builds the image store selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (ImageStore, error) {
	switch cfg.Backend {
	case config.StorageS3:
		return NewS3Store(ctx, cfg, logger)
	case config.StorageMinIO:
		return NewMinIOStore(ctx, cfg, logger)
	case config.StorageCloudinary:
		return NewCloudinaryStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// objectKey returns a collision-free key under prefix that keeps the original
// file extension.
func objectKey(prefix, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return prefix + uuid.NewString() + ext
}

// joinURL appends key to base with exactly one separating slash.
func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
