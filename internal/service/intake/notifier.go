package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	models "github.com/rhk9003/metaads/internal/domain/models/intake"
	"github.com/rhk9003/metaads/internal/domain/repositories"
	"github.com/rhk9003/metaads/internal/domain/services"
)

type notifierService struct {
	sender     repositories.MailSender
	adminEmail string
	logger     *slog.Logger
}

// NewNotifier creates the confirmation notifier. A nil sender makes it a
// deliberate no-op: without an OAuth identity or SMTP mailbox there is no
// address to send as.
func NewNotifier(sender repositories.MailSender, adminEmail string, logger *slog.Logger) services.Notifier {
	return &notifierService{
		sender:     sender,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Notify mails the submitter and the admin that the submission landed.
// The data is already durably stored when this runs; the caller treats an
// error as a soft warning.
func (s *notifierService) Notify(ctx context.Context, recipient string, result *models.SubmissionResult) error {
	if s.sender == nil {
		s.logger.Debug("no mail transport configured, skipping notification", "recipient", recipient)
		return nil
	}

	to := make([]string, 0, 2)
	if recipient != "" {
		to = append(to, recipient)
	}
	if s.adminEmail != "" && s.adminEmail != recipient {
		to = append(to, s.adminEmail)
	}
	if len(to) == 0 {
		return nil
	}

	subject := fmt.Sprintf("【系統通知】廣告資料已上刊 %s", result.BlockName)

	var b strings.Builder
	b.WriteString("系統通知：\n\n")
	fmt.Fprintf(&b, "廣告組合 ID：%s\n", result.BlockName)
	fmt.Fprintf(&b, "文件連結：%s\n", result.DocumentURL)
	if !result.ImageEmbedded {
		b.WriteString("注意：圖片上傳失敗，文件內未嵌入圖片。\n")
	}
	b.WriteString("\n請查收。\n")

	return s.sender.Send(ctx, to, subject, b.String())
}
