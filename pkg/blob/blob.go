package blob

import (
	"context"
	"errors"
)

type Provider interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// Store is a Provider that can hand out providers scoped to another bucket.
type Store interface {
	Provider

	Bucket(name string) (Provider, error)
}

var (
	ErrNotFound = errors.New("object not found")
)
