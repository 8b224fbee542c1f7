package storage

import (
	"context"
	"io"
	"time"
)

// Service stores attachment payloads in remote object storage.
type Service interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
	PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
