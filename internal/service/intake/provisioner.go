package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/rhk9003/metaads/internal/domain"
	models "github.com/rhk9003/metaads/internal/domain/models/intake"
	"github.com/rhk9003/metaads/internal/domain/repositories"
	"github.com/rhk9003/metaads/internal/domain/services"
)

type provisionerService struct {
	drive          repositories.DriveStore
	rootFolderName string
	adminEmail     string
	group          singleflight.Group
	logger         *slog.Logger
}

// NewProvisioner creates the folder/document provisioner. Concurrent
// first-submissions for the same case id are collapsed into one
// find-or-create sequence per process via singleflight.
func NewProvisioner(drive repositories.DriveStore, rootFolderName, adminEmail string, logger *slog.Logger) services.Provisioner {
	return &provisionerService{
		drive:          drive,
		rootFolderName: rootFolderName,
		adminEmail:     adminEmail,
		logger:         logger,
	}
}

// EnsureDocument finds or creates the case document and returns its id.
func (s *provisionerService) EnsureDocument(ctx context.Context, caseID, customerEmail string) (string, error) {
	if caseID == "" {
		return "", &domain.ValidationError{Message: "case id is required"}
	}

	// The closure runs once for all concurrent callers of this case id;
	// detach it from the first caller's cancellation so piggybacked
	// requests don't inherit a stranger's context error.
	ensureCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(caseID, func() (interface{}, error) {
		return s.ensure(ensureCtx, caseID, customerEmail)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *provisionerService) ensure(ctx context.Context, caseID, customerEmail string) (string, error) {
	docName := models.DocumentName(caseID)

	// Fast path: the document already exists. Re-apply sharing so a
	// changed customer email still gets access; sharing failures here
	// are best-effort.
	existing, err := s.drive.FindDocument(ctx, docName)
	if err == nil {
		s.shareBestEffort(ctx, existing.ID, customerEmail)
		s.logger.Debug("case document already provisioned", "case_id", caseID, "doc_id", existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	// The service identity has no quota of its own; everything lives
	// inside the root folder a human operator pre-shared to it. Its
	// absence is an operational setup failure, never retried here.
	root, err := s.drive.FindFolder(ctx, s.rootFolderName, "")
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", &domain.SetupError{
				Message: fmt.Sprintf("root folder %q does not exist or is not shared to the service identity", s.rootFolderName),
			}
		}
		return "", err
	}

	prefix := models.CustomerPrefix(caseID)
	folder, err := s.drive.FindFolder(ctx, prefix, root.ID)
	if errors.Is(err, domain.ErrNotFound) {
		folder, err = s.drive.CreateFolder(ctx, prefix, root.ID)
	}
	if err != nil {
		return "", err
	}

	doc, err := s.drive.CreateDocument(ctx, docName, folder.ID)
	if err != nil {
		return "", err
	}

	s.shareBestEffort(ctx, doc.ID, customerEmail)

	s.logger.Info("case document provisioned",
		"case_id", caseID,
		"doc_id", doc.ID,
		"folder", prefix,
		"customer_email", customerEmail,
	)
	return doc.ID, nil
}

// shareBestEffort grants write access to the customer and the admin.
// Failures are logged and swallowed: access can be fixed by hand, the
// submission must not fail over it.
func (s *provisionerService) shareBestEffort(ctx context.Context, docID, customerEmail string) {
	for _, email := range []string{customerEmail, s.adminEmail} {
		if email == "" {
			continue
		}
		if err := s.drive.ShareWriter(ctx, docID, email); err != nil {
			s.logger.Warn("sharing failed", "doc_id", docID, "email", email, "error", err)
		}
	}
}
