package googleapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/rhk9003/metaads/internal/domain"
	"github.com/rhk9003/metaads/internal/domain/repositories"
)

// GmailSender sends mail as the authenticated user via the Gmail API.
// Only usable in OAuth mode.
type GmailSender struct {
	svc    *gmail.Service
	logger *slog.Logger
}

// NewGmailSender creates a Gmail-backed mail sender.
func NewGmailSender(cfg *RepositoryConfig) repositories.MailSender {
	return &GmailSender{
		svc:    cfg.Services.Gmail,
		logger: cfg.Logger,
	}
}

// Send builds an RFC 822 plain-text message and sends it as "me".
func (s *GmailSender) Send(ctx context.Context, to []string, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	raw := base64.URLEncoding.EncodeToString([]byte(msg.String()))
	_, err := s.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return &domain.UpstreamError{Message: "send mail to " + strings.Join(to, ", "), Err: err}
	}

	s.logger.Info("confirmation mail sent", "to", to)
	return nil
}
