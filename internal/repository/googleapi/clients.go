package googleapi

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Services bundles the authenticated Google API clients. Gmail is nil
// outside OAuth mode.
type Services struct {
	Sheets *sheets.Service
	Drive  *drive.Service
	Docs   *docs.Service
	Gmail  *gmail.Service
}

// RepositoryConfig holds shared dependencies for the repository
// implementations in this package.
type RepositoryConfig struct {
	Services *Services
	Logger   *slog.Logger
}

// NewServices creates the API clients from resolved credentials.
func NewServices(ctx context.Context, creds *Credentials) (*Services, error) {
	opts := []option.ClientOption{option.WithTokenSource(creds.TokenSource)}

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}

	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create docs client: %w", err)
	}

	svcs := &Services{
		Sheets: sheetsSvc,
		Drive:  driveSvc,
		Docs:   docsSvc,
	}

	if creds.Mode == CredentialOAuth {
		gmailSvc, err := gmail.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("create gmail client: %w", err)
		}
		svcs.Gmail = gmailSvc
	}

	return svcs, nil
}
