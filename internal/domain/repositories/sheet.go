package repositories

import "context"

// SheetReader reads the master sheet's first worksheet.
type SheetReader interface {
	// Rows returns the header row and the data rows below it.
	Rows(ctx context.Context) (headers []string, rows [][]string, err error)
}
