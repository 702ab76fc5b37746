package notifymock

import (
	"context"
	"sync"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/notify"
)

var _ notify.Sender = (*Sender)(nil)

// Message captures a single dispatched notification.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Sender records every Send call. SendFn, when set, controls the returned
// error; the message is captured either way.
type Sender struct {
	SendFn func(ctx context.Context, recipient, subject, body string) error

	mu   sync.Mutex
	sent []Message
}

func (m *Sender) Send(ctx context.Context, recipient, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, Message{Recipient: recipient, Subject: subject, Body: body})
	m.mu.Unlock()
	if m.SendFn != nil {
		return m.SendFn(ctx, recipient, subject, body)
	}
	return nil
}

// Sent returns a snapshot of the captured messages.
func (m *Sender) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
