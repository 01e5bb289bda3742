package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rhk9003/metaads/internal/domain"
	models "github.com/rhk9003/metaads/internal/domain/models/intake"
	"github.com/rhk9003/metaads/internal/domain/repositories"
	"github.com/rhk9003/metaads/internal/domain/services"
)

type appenderService struct {
	docs   repositories.DocTableWriter
	logger *slog.Logger
}

// NewDocumentAppender creates the appender. The case document is
// append-only: every submission adds one 1x2 table at the document start,
// newest on top.
func NewDocumentAppender(docs repositories.DocTableWriter, logger *slog.Logger) services.DocumentAppender {
	return &appenderService{
		docs:   docs,
		logger: logger,
	}
}

// Append inserts metadata and image as a fresh table and returns the
// block name.
func (s *appenderService) Append(ctx context.Context, docID string, sub *models.AdSubmission) (string, error) {
	if sub == nil {
		return "", &domain.ValidationError{Message: "submission is required"}
	}
	blockName := sub.BlockName()

	// Index 1 is always the document start; tables accumulate with the
	// newest submission first.
	if err := s.docs.InsertTable(ctx, docID, 1, 2, 1); err != nil {
		return "", err
	}

	// Cell offsets cannot be known before the insert; re-read the
	// structure to learn where the new cells begin.
	slots, err := s.docs.FirstTableSlots(ctx, docID)
	if err != nil {
		return "", err
	}

	if err := s.docs.FillSlots(ctx, docID, slots, formatBlock(sub, blockName), sub.ImageURL); err != nil {
		return "", err
	}

	s.logger.Info("submission appended",
		"doc_id", docID,
		"block_name", blockName,
		"with_image", sub.ImageURL != "",
	)
	return blockName, nil
}

// formatBlock renders the left-cell metadata text. Labels follow the case
// document's established format.
func formatBlock(sub *models.AdSubmission, blockName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "廣告組合 ID: %s\n", blockName)
	fmt.Fprintf(&b, "填寫時間: %s\n", sub.FillTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "廣告名稱/編號: %s\n", sub.AdNameID)
	fmt.Fprintf(&b, "對應圖片名稱/編號: %s\n", sub.ImageNameID)
	fmt.Fprintf(&b, "對應圖片雲端網址: %s\n", sub.ImageURL)
	fmt.Fprintf(&b, "廣告標題: %s\n", sub.Headline)
	fmt.Fprintf(&b, "廣告主文案:\n%s\n", sub.MainCopy)
	fmt.Fprintf(&b, "廣告到達網址: %s\n", sub.LandingURL)
	return b.String()
}
