// Package sessions gives logout real semantics under bearer tokens: a
// revoked token ID stays denied until the token would have expired
// anyway. Backends: Redis (networked) or bbolt (embedded), mirroring the
// database's own pluggable-backend split.
package sessions

import (
	"context"
	"time"
)

// RevocationStore records revoked token IDs until their expiry.
type RevocationStore interface {
	// Revoke denies the token ID until the given expiry time.
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	// Revoked reports whether the token ID has been revoked.
	Revoked(ctx context.Context, tokenID string) (bool, error)
	Close() error
}
