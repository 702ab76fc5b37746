package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogSender stands in for SMTP in development: messages go to the log
// instead of the wire. The code itself is never logged.
type LogSender struct{ log *zap.Logger }

func NewLogSender(log *zap.Logger) *LogSender { return &LogSender{log: log} }

func (s *LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.log.Info("mail suppressed (no smtp configured)",
		zap.String("to", recipient),
		zap.String("subject", subject),
	)
	return nil
}
