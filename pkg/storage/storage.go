package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"lms-backend/pkg/utils"
)

// ObjectStorage is implemented by every object store backend.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
	Bucket() string
}

// New builds the backend selected by cfg.Driver. It returns a nil storage
// and no error when no driver is configured.
func New(ctx context.Context, cfg utils.StorageConfig) (ObjectStorage, error) {
	switch cfg.Driver {
	case utils.StorageDriverNone:
		return nil, nil
	case utils.StorageDriverMinIO:
		return NewMinioClient(cfg)
	case utils.StorageDriverS3:
		return NewS3Client(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		out += "/" + strings.Trim(p, "/")
	}
	return out
}
