package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/rhk9003/metaads/internal/domain"
	models "github.com/rhk9003/metaads/internal/domain/models/intake"
	"github.com/rhk9003/metaads/internal/domain/repositories"
	"github.com/rhk9003/metaads/internal/domain/services"
)

// mimeExtensions maps creative MIME types to file extensions, used when
// the uploaded filename has none.
var mimeExtensions = map[string]string{
	"image/gif":  ".gif",
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// permissionPropagationWait is how long to wait after making the asset
// public before handing its URL to the document engine. The anyone-reader
// permission is not instantly visible to unauthenticated fetches.
const permissionPropagationWait = 2 * time.Second

type uploaderService struct {
	drive  repositories.DriveStore
	wait   time.Duration
	logger *slog.Logger
}

// NewAssetUploader creates the asset uploader.
func NewAssetUploader(drive repositories.DriveStore, logger *slog.Logger) services.AssetUploader {
	return &uploaderService{
		drive:  drive,
		wait:   permissionPropagationWait,
		logger: logger,
	}
}

// Upload stores the creative in the per-customer image subfolder next to
// the case document, makes it publicly readable, and returns its links.
func (s *uploaderService) Upload(ctx context.Context, req *services.UploadRequest) (*models.UploadedAsset, error) {
	if req.Blob == nil {
		return nil, &domain.ValidationError{Message: "image blob is required"}
	}

	meta, err := s.drive.Metadata(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if len(meta.Parents) == 0 {
		return nil, &domain.UpstreamError{Message: "document " + req.DocumentID + " has no parent folder"}
	}
	parentID := meta.Parents[0]

	folder, err := s.imageFolder(ctx, req.CaseID, parentID)
	if err != nil {
		return nil, err
	}

	baseName := req.ImageNameID
	if baseName == "" {
		baseName = "image"
	}
	name := baseName + extensionFor(req.Blob.Filename, req.Blob.MIMEType)

	uploaded, err := s.drive.Upload(ctx, folder.ID, name, req.Blob.MIMEType, req.Blob.Content)
	if err != nil {
		return nil, err
	}

	// The document engine fetches images by unauthenticated URL.
	if err := s.drive.ShareAnyoneReader(ctx, uploaded.ID); err != nil {
		return nil, err
	}

	select {
	case <-time.After(s.wait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Links are often absent from the create response; re-read.
	final, err := s.drive.Metadata(ctx, uploaded.ID)
	if err != nil {
		final = uploaded
	}

	asset := &models.UploadedAsset{
		FileID:      uploaded.ID,
		Name:        name,
		DisplayLink: final.ThumbnailLink,
		RawLink:     final.WebContentLink,
	}
	if asset.DisplayLink == "" {
		asset.DisplayLink = final.WebContentLink
	}
	if asset.DisplayLink == "" {
		return nil, &domain.UpstreamError{
			Message: fmt.Sprintf("uploaded asset %s has no fetchable link", uploaded.ID),
		}
	}

	s.logger.Info("asset stored",
		"case_id", req.CaseID,
		"file_id", uploaded.ID,
		"name", name,
	)
	return asset, nil
}

// imageFolder find-or-creates the images subfolder beside the case
// document. An older deployment named it "Images_圖檔"; that name is still
// honored when present.
func (s *uploaderService) imageFolder(ctx context.Context, caseID, parentID string) (*repositories.File, error) {
	name := models.ImageFolderName(caseID)

	folder, err := s.drive.FindFolder(ctx, name, parentID)
	if err == nil {
		return folder, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	legacy, legacyErr := s.drive.FindFolder(ctx, models.LegacyImageFolderName, parentID)
	if legacyErr == nil {
		return legacy, nil
	}
	if !errors.Is(legacyErr, domain.ErrNotFound) {
		return nil, legacyErr
	}

	return s.drive.CreateFolder(ctx, name, parentID)
}

// extensionFor infers the stored filename extension: taken from the
// uploaded filename when present, else from the MIME type table.
func extensionFor(filename, mimeType string) string {
	if ext := path.Ext(filename); ext != "" {
		return ext
	}
	return mimeExtensions[mimeType]
}
