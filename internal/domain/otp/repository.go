package otp

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Challenge) error

	// GetActive returns the most recently created challenge for
	// (identifier, purpose) that is active, unused and unexpired at `now`.
	GetActive(ctx context.Context, identifier string, purpose Purpose, now time.Time) (*Challenge, error)

	// DeactivateAll supersedes every outstanding active challenge for the
	// pair, so at most one live challenge exists after a fresh Create.
	DeactivateAll(ctx context.Context, identifier string, purpose Purpose) error

	Save(ctx context.Context, c *Challenge) error

	// RegisterFailedAttempt increments the attempt counter in its own
	// transaction and deactivates the challenge once the counter reaches
	// max, reporting that lockout. The write commits independently of any
	// transaction the caller holds: a failed verification rolls the
	// caller's transaction back, and the counter must survive that.
	RegisterFailedAttempt(ctx context.Context, challengeID uint64, max int) (locked bool, err error)

	// Consume marks the challenge used. The write is conditional on the
	// challenge still being live at `now`; ErrNotFound means another
	// consumer or a lockout got there first. Inside a transaction the
	// consumption commits or rolls back with the caller.
	Consume(ctx context.Context, challengeID uint64, now time.Time) error
}
