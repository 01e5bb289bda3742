package googleapi

import (
	"context"
	"log/slog"

	"google.golang.org/api/docs/v1"

	"github.com/rhk9003/metaads/internal/domain"
	"github.com/rhk9003/metaads/internal/domain/repositories"
)

// DocsRepository implements repositories.DocTableWriter on the Docs v1 API.
type DocsRepository struct {
	svc    *docs.Service
	logger *slog.Logger
}

// NewDocsRepository creates a Docs repository.
func NewDocsRepository(cfg *RepositoryConfig) repositories.DocTableWriter {
	return &DocsRepository{
		svc:    cfg.Services.Docs,
		logger: cfg.Logger,
	}
}

// InsertTable inserts a rows x cols table at the given body index.
func (r *DocsRepository) InsertTable(ctx context.Context, docID string, rows, cols, index int64) error {
	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			InsertTable: &docs.InsertTableRequest{
				Rows:     rows,
				Columns:  cols,
				Location: &docs.Location{Index: index},
			},
		}},
	}

	if _, err := r.svc.Documents.BatchUpdate(docID, req).Context(ctx).Do(); err != nil {
		return &domain.UpstreamError{Message: "insert table into " + docID, Err: err}
	}
	return nil
}

// FirstTableSlots re-reads the document and returns the cell insertion
// offsets of the first table in the body. Offsets are never known a priori:
// the content model requires a structural read-after-write to learn where a
// new table's cells begin.
func (r *DocsRepository) FirstTableSlots(ctx context.Context, docID string) (*repositories.TableSlots, error) {
	doc, err := r.svc.Documents.Get(docID).Context(ctx).Do()
	if err != nil {
		return nil, &domain.UpstreamError{Message: "read structure of " + docID, Err: err}
	}

	left, right, ok := firstTableCellIndices(doc)
	if !ok {
		return nil, &domain.UpstreamError{Message: "no 1x2 table found in " + docID}
	}

	return &repositories.TableSlots{Left: left, Right: right}, nil
}

// FillSlots writes the text and optional inline image as one batched edit.
func (r *DocsRepository) FillSlots(ctx context.Context, docID string, slots *repositories.TableSlots, text, imageURL string) error {
	// Edits are applied sequentially within a batch and every insert
	// shifts later offsets. Writing the right cell first keeps the left
	// offset valid.
	var reqs []*docs.Request

	if imageURL != "" {
		reqs = append(reqs, &docs.Request{
			InsertInlineImage: &docs.InsertInlineImageRequest{
				Location: &docs.Location{Index: slots.Right},
				Uri:      imageURL,
				ObjectSize: &docs.Size{
					Width: &docs.Dimension{Magnitude: 250, Unit: "PT"},
				},
			},
		})
	}

	reqs = append(reqs, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: slots.Left},
			Text:     text,
		},
	})

	batch := &docs.BatchUpdateDocumentRequest{Requests: reqs}
	if _, err := r.svc.Documents.BatchUpdate(docID, batch).Context(ctx).Do(); err != nil {
		return &domain.UpstreamError{Message: "write submission into " + docID, Err: err}
	}

	r.logger.Debug("table cells written", "doc_id", docID, "with_image", imageURL != "")
	return nil
}

// TableCount returns how many tables the document body contains.
func (r *DocsRepository) TableCount(ctx context.Context, docID string) (int, error) {
	doc, err := r.svc.Documents.Get(docID).Context(ctx).Do()
	if err != nil {
		return 0, &domain.UpstreamError{Message: "read structure of " + docID, Err: err}
	}

	count := 0
	if doc.Body != nil {
		for _, elem := range doc.Body.Content {
			if elem.Table != nil {
				count++
			}
		}
	}
	return count, nil
}

// firstTableCellIndices locates the first table in the document body and
// returns the insertion offsets of its first row's first two cells. A cell's
// writable position is the start of its first structural element (the empty
// paragraph every new cell carries).
func firstTableCellIndices(doc *docs.Document) (left, right int64, ok bool) {
	if doc == nil || doc.Body == nil {
		return 0, 0, false
	}

	for _, elem := range doc.Body.Content {
		if elem.Table == nil {
			continue
		}
		if len(elem.Table.TableRows) == 0 {
			return 0, 0, false
		}
		row := elem.Table.TableRows[0]
		if len(row.TableCells) < 2 {
			return 0, 0, false
		}
		return cellInsertIndex(row.TableCells[0]), cellInsertIndex(row.TableCells[1]), true
	}

	return 0, 0, false
}

func cellInsertIndex(cell *docs.TableCell) int64 {
	if len(cell.Content) > 0 {
		return cell.Content[0].StartIndex
	}
	return cell.StartIndex + 1
}
