package repositories

import (
	"context"
	"io"
)

// File is the subset of Drive file metadata the intake flow needs.
type File struct {
	ID             string
	Name           string
	MimeType       string
	Parents        []string
	ThumbnailLink  string
	WebContentLink string
	WebViewLink    string
}

// Quota reports the identity's Drive storage state (doctor diagnostics).
type Quota struct {
	UserEmail  string
	LimitBytes int64
	UsageBytes int64
	TrashBytes int64
}

// OwnedFile is a file owned by the identity (doctor diagnostics).
type OwnedFile struct {
	ID        string
	Name      string
	SizeBytes int64
	CreatedAt string
}

// DriveStore defines folder/file operations against the document storage.
// Find methods search non-trashed items, including shared drives, and
// return domain.ErrNotFound-matching errors when nothing matches.
type DriveStore interface {
	// FindDocument finds a Google Doc by exact name, anywhere reachable.
	FindDocument(ctx context.Context, name string) (*File, error)

	// FindFolder finds a folder by exact name. An empty parentID searches
	// anywhere reachable; otherwise the search is scoped to the parent.
	FindFolder(ctx context.Context, name, parentID string) (*File, error)

	// CreateFolder creates a folder, optionally inside a parent.
	CreateFolder(ctx context.Context, name, parentID string) (*File, error)

	// CreateDocument creates an empty Google Doc inside a folder.
	CreateDocument(ctx context.Context, name, folderID string) (*File, error)

	// ShareWriter grants write access to an email address.
	ShareWriter(ctx context.Context, fileID, email string) error

	// ShareAnyoneReader makes the file readable by anyone with the link.
	// Required so the document engine can fetch images by URL.
	ShareAnyoneReader(ctx context.Context, fileID string) error

	// Upload stores a blob inside a folder and returns its metadata,
	// including thumbnail and content links.
	Upload(ctx context.Context, folderID, name, mimeType string, content io.Reader) (*File, error)

	// Metadata fetches a file's metadata (parents and links included).
	Metadata(ctx context.Context, fileID string) (*File, error)

	// About reports the identity's storage quota.
	About(ctx context.Context) (*Quota, error)

	// ListOwned lists up to limit non-trashed files owned by the identity.
	ListOwned(ctx context.Context, limit int64) ([]OwnedFile, error)

	// EmptyTrash permanently deletes the identity's trashed files,
	// reclaiming their quota.
	EmptyTrash(ctx context.Context) error
}
