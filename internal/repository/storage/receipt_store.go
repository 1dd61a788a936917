package storage

import (
	"context"
	"io"
	"time"
)

// ReceiptStore stores receipt files for ledger entries
type ReceiptStore interface {
	// Upload stores data under key and returns the key
	Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64) (string, error)

	// Delete removes the object stored under key
	Delete(ctx context.Context, key string) error

	// PresignedURL returns a temporary download URL for key
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
