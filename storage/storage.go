// Package storage holds note file bytes outside the relational database,
// keyed by filename. Two backends: a local uploads directory and a
// Backblaze B2 bucket.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Get when no blob is stored under the key.
// Delete never returns it: deleting a missing key is a no-op.
var ErrNotExist = errors.New("blob does not exist")

type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
