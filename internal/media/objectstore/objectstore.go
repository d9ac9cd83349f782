// Package objectstore holds uploaded KYC media. Clients upload directly with a
// presigned URL; the server only reads and deletes.
package objectstore

import (
	"context"
	"time"
)

// Store is the storage collaborator used by the KYC engine.
type Store interface {
	PresignedUploadURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// MaxObjectSize caps how much of an object Get will read.
const MaxObjectSize = 10 << 20
