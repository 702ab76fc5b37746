package download

import (
	"context"
	"time"
)

// TokenStore holds outstanding tokens with a hard TTL. Backed by redis in
// production; tokens disappear on their own after the retention window.
type TokenStore interface {
	Put(ctx context.Context, t *Token, retain time.Duration) error
	// Get returns ErrNotFound when the token was never issued or has been
	// garbage-collected.
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
