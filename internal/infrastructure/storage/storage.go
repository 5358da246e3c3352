package storage

import (
	"context"
)

// ContentStore uploads a content object and returns its public URL.
// Implementations are not idempotent: callers derive unique paths.
type ContentStore interface {
	Put(ctx context.Context, path string, content []byte, message string) (string, error)
}
