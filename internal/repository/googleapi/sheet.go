package googleapi

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/sheets/v4"

	"github.com/rhk9003/metaads/internal/domain"
	"github.com/rhk9003/metaads/internal/domain/repositories"
)

// SheetRepository reads the master sheet via the Sheets API.
type SheetRepository struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewSheetRepository creates a sheet repository for one spreadsheet.
func NewSheetRepository(cfg *RepositoryConfig, spreadsheetID string) repositories.SheetReader {
	return &SheetRepository{
		svc:           cfg.Services.Sheets,
		spreadsheetID: spreadsheetID,
		logger:        cfg.Logger,
	}
}

// Rows reads the first worksheet. The unqualified A1 range addresses the
// first sheet of the spreadsheet.
func (r *SheetRepository) Rows(ctx context.Context) ([]string, [][]string, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, "A1:ZZ").Context(ctx).Do()
	if err != nil {
		return nil, nil, &domain.UpstreamError{
			Message: fmt.Sprintf("read master sheet %s", r.spreadsheetID),
			Err:     err,
		}
	}

	if len(resp.Values) == 0 {
		return nil, nil, nil
	}

	headers := toStrings(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		rows = append(rows, toStrings(raw))
	}

	r.logger.Debug("master sheet read", "headers", len(headers), "rows", len(rows))
	return headers, rows, nil
}

// toStrings flattens one row of cell values. The API returns interface{}
// cells; everything the intake flow needs is textual.
func toStrings(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		if s, ok := v.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
