// Package smtpmail sends notification mail over plain SMTP. Used when the
// resolved credential is a service account (which cannot send mail as a
// real mailbox) but an SMTP mailbox is configured.
package smtpmail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/rhk9003/metaads/internal/domain/repositories"
)

// Sender implements repositories.MailSender over gomail.
type Sender struct {
	host     string
	port     int
	username string
	password string
	logger   *slog.Logger
}

// NewSender creates an SMTP sender.
func NewSender(host string, port int, username, password string, logger *slog.Logger) repositories.MailSender {
	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		logger:   logger,
	}
}

// Send dials the SMTP server and sends one plain-text message. gomail has
// no context support; cancellation ends at the dial.
func (s *Sender) Send(ctx context.Context, to []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.username)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %v: %w", to, err)
	}

	s.logger.Info("confirmation mail sent", "to", to, "transport", "smtp")
	return nil
}
