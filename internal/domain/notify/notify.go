package notify

import "context"

// Sender dispatches a message to an identifier (email address or phone
// number). Delivery is fire-and-forget from the caller's point of view:
// failures are logged by implementations, never surfaced to end users.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
