package repositories

import "context"

// TableSlots are the insertion offsets of the two cells of a freshly
// inserted 1x2 table. Offsets are only valid against the document revision
// they were read from; callers must re-read after any structural edit.
type TableSlots struct {
	Left  int64
	Right int64
}

// DocTableWriter defines the structural edits the appender performs on a
// case document.
type DocTableWriter interface {
	// InsertTable inserts a rows x cols table at the given body index.
	InsertTable(ctx context.Context, docID string, rows, cols, index int64) error

	// FirstTableSlots re-reads the document structure and returns the
	// cell insertion offsets of the first table in the body.
	FirstTableSlots(ctx context.Context, docID string) (*TableSlots, error)

	// FillSlots writes text into the left cell and, when imageURL is
	// non-empty, an inline image into the right cell, as one batched edit.
	FillSlots(ctx context.Context, docID string, slots *TableSlots, text, imageURL string) error

	// TableCount returns how many tables the document body contains.
	TableCount(ctx context.Context, docID string) (int, error)
}
