package googleapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/rhk9003/metaads/internal/domain"
	"github.com/rhk9003/metaads/internal/domain/repositories"
)

const (
	folderMimeType   = "application/vnd.google-apps.folder"
	documentMimeType = "application/vnd.google-apps.document"

	fileFields = "id, name, mimeType, parents, thumbnailLink, webContentLink, webViewLink"
)

// DriveRepository implements repositories.DriveStore on the Drive v3 API.
// All searches include shared drives: the service identity owns no quota of
// its own and works entirely inside folders shared to it.
type DriveRepository struct {
	svc    *drive.Service
	logger *slog.Logger
}

// NewDriveRepository creates a Drive repository.
func NewDriveRepository(cfg *RepositoryConfig) repositories.DriveStore {
	return &DriveRepository{
		svc:    cfg.Services.Drive,
		logger: cfg.Logger,
	}
}

// FindDocument finds a Google Doc by exact name, anywhere reachable.
func (r *DriveRepository) FindDocument(ctx context.Context, name string) (*repositories.File, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQueryTerm(name), documentMimeType)
	return r.findOne(ctx, query, "document", name)
}

// FindFolder finds a folder by exact name, optionally scoped to a parent.
func (r *DriveRepository) FindFolder(ctx context.Context, name, parentID string) (*repositories.File, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQueryTerm(name), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", escapeQueryTerm(parentID))
	}
	return r.findOne(ctx, query, "folder", name)
}

func (r *DriveRepository) findOne(ctx context.Context, query, kind, name string) (*repositories.File, error) {
	resp, err := r.svc.Files.List().
		Q(query).
		Fields(googleapi.Field("files(" + fileFields + ")")).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		PageSize(2).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &domain.UpstreamError{Message: "search " + kind + " " + name, Err: err}
	}

	if len(resp.Files) == 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("%s %q not found", kind, name)}
	}
	if len(resp.Files) > 1 {
		r.logger.Warn("duplicate items for name, using first",
			"kind", kind, "name", name, "count", len(resp.Files))
	}

	return fromDriveFile(resp.Files[0]), nil
}

// CreateFolder creates a folder, optionally inside a parent.
func (r *DriveRepository) CreateFolder(ctx context.Context, name, parentID string) (*repositories.File, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	created, err := r.svc.Files.Create(meta).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &domain.UpstreamError{Message: "create folder " + name, Err: err}
	}

	r.logger.Info("folder created", "id", created.Id, "name", name, "parent", parentID)
	return fromDriveFile(created), nil
}

// CreateDocument creates an empty Google Doc inside a folder.
func (r *DriveRepository) CreateDocument(ctx context.Context, name, folderID string) (*repositories.File, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: documentMimeType,
	}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	created, err := r.svc.Files.Create(meta).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &domain.UpstreamError{Message: "create document " + name, Err: err}
	}

	r.logger.Info("document created", "id", created.Id, "name", name, "folder", folderID)
	return fromDriveFile(created), nil
}

// ShareWriter grants write access to an email address.
func (r *DriveRepository) ShareWriter(ctx context.Context, fileID, email string) error {
	_, err := r.svc.Permissions.Create(fileID, &drive.Permission{
		Type:         "user",
		Role:         "writer",
		EmailAddress: email,
	}).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return &domain.UpstreamError{Message: "share " + fileID + " with " + email, Err: err}
	}
	return nil
}

// ShareAnyoneReader makes the file readable by anyone with the link.
func (r *DriveRepository) ShareAnyoneReader(ctx context.Context, fileID string) error {
	_, err := r.svc.Permissions.Create(fileID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return &domain.UpstreamError{Message: "make " + fileID + " public-read", Err: err}
	}
	return nil
}

// Upload stores a blob inside a folder.
func (r *DriveRepository) Upload(ctx context.Context, folderID, name, mimeType string, content io.Reader) (*repositories.File, error) {
	meta := &drive.File{
		Name:    name,
		Parents: []string{folderID},
	}

	created, err := r.svc.Files.Create(meta).
		Media(content, googleapi.ContentType(mimeType)).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &domain.UpstreamError{Message: "upload " + name, Err: err}
	}

	r.logger.Info("asset uploaded", "id", created.Id, "name", name, "folder", folderID, "mime", mimeType)
	return fromDriveFile(created), nil
}

// Metadata fetches a file's metadata, parents and links included.
func (r *DriveRepository) Metadata(ctx context.Context, fileID string) (*repositories.File, error) {
	f, err := r.svc.Files.Get(fileID).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &domain.UpstreamError{Message: "get metadata for " + fileID, Err: err}
	}
	return fromDriveFile(f), nil
}

// About reports the identity's storage quota.
func (r *DriveRepository) About(ctx context.Context) (*repositories.Quota, error) {
	about, err := r.svc.About.Get().
		Fields("storageQuota, user").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &domain.UpstreamError{Message: "read drive quota", Err: err}
	}

	q := &repositories.Quota{}
	if about.User != nil {
		q.UserEmail = about.User.EmailAddress
	}
	if about.StorageQuota != nil {
		q.LimitBytes = about.StorageQuota.Limit
		q.UsageBytes = about.StorageQuota.Usage
		q.TrashBytes = about.StorageQuota.UsageInDriveTrash
	}
	return q, nil
}

// ListOwned lists up to limit non-trashed files owned by the identity.
func (r *DriveRepository) ListOwned(ctx context.Context, limit int64) ([]repositories.OwnedFile, error) {
	resp, err := r.svc.Files.List().
		Q("'me' in owners and trashed = false").
		PageSize(limit).
		Fields("files(id, name, size, createdTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &domain.UpstreamError{Message: "list owned files", Err: err}
	}

	out := make([]repositories.OwnedFile, 0, len(resp.Files))
	for _, f := range resp.Files {
		out = append(out, repositories.OwnedFile{
			ID:        f.Id,
			Name:      f.Name,
			SizeBytes: f.Size,
			CreatedAt: f.CreatedTime,
		})
	}
	return out, nil
}

// EmptyTrash permanently deletes the identity's trashed files.
func (r *DriveRepository) EmptyTrash(ctx context.Context) error {
	if err := r.svc.Files.EmptyTrash().Context(ctx).Do(); err != nil {
		return &domain.UpstreamError{Message: "empty trash", Err: err}
	}
	r.logger.Info("drive trash emptied")
	return nil
}

// fromDriveFile converts API metadata to the domain file, normalizing the
// thumbnail link to a display size suitable for embedding.
func fromDriveFile(f *drive.File) *repositories.File {
	return &repositories.File{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Parents:        f.Parents,
		ThumbnailLink:  enlargeThumbnail(f.ThumbnailLink),
		WebContentLink: f.WebContentLink,
		WebViewLink:    f.WebViewLink,
	}
}

var thumbnailSizeRe = regexp.MustCompile(`=s\d+(-[a-z]+)*$`)

// enlargeThumbnail rewrites Drive's default thumbnail size parameter
// (typically "=s220") to a size large enough for document embedding.
func enlargeThumbnail(link string) string {
	if link == "" {
		return ""
	}
	if thumbnailSizeRe.MatchString(link) {
		return thumbnailSizeRe.ReplaceAllString(link, "=s1600")
	}
	return link
}

// escapeQueryTerm escapes a value for inclusion in a Drive search query.
func escapeQueryTerm(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
