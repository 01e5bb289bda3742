package repositories

import "context"

// MailSender sends a plain-text message to one or more recipients.
type MailSender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}
