package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers notification mail over plain SMTP.
type SMTPSender struct{ config SMTPConfig }

func NewSMTPSender(cfg SMTPConfig) *SMTPSender { return &SMTPSender{config: cfg} }

func (m *SMTPSender) Send(ctx context.Context, recipient, subject, body string) error {
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	headers := map[string]string{
		"From":         m.config.From,
		"To":           recipient,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": `text/plain; charset="utf-8"`,
	}

	var msg strings.Builder
	for k, v := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.config.From, []string{recipient}, []byte(msg.String()))
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
