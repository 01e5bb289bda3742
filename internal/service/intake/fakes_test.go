package intake

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rhk9003/metaads/internal/domain"
	"github.com/rhk9003/metaads/internal/domain/repositories"
)

// fakeSheetReader serves a fixed header row and data rows.
type fakeSheetReader struct {
	headers []string
	rows    [][]string
	err     error
}

func (f *fakeSheetReader) Rows(ctx context.Context) ([]string, [][]string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.headers, f.rows, nil
}

// fakeDriveStore is an in-memory Drive: files with parents, share
// recording, and injectable failures.
type fakeDriveStore struct {
	mu     sync.Mutex
	files  map[string]*repositories.File
	nextID int

	createFolderCalls int
	createDocCalls    int
	emptyTrashCalls   int
	sharedWith        map[string][]string
	publicRead        map[string]bool

	uploadErr      error
	metadataErr    error
	shareErr       error
	thumbnailLink  string
	webContentLink string
}

func newFakeDriveStore() *fakeDriveStore {
	return &fakeDriveStore{
		files:      make(map[string]*repositories.File),
		sharedWith: make(map[string][]string),
		publicRead: make(map[string]bool),
	}
}

const (
	fakeFolderMime   = "application/vnd.google-apps.folder"
	fakeDocumentMime = "application/vnd.google-apps.document"
)

func (f *fakeDriveStore) add(name, mimeType, parentID string) *repositories.File {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(name, mimeType, parentID)
}

func (f *fakeDriveStore) addLocked(name, mimeType, parentID string) *repositories.File {
	f.nextID++
	file := &repositories.File{
		ID:       fmt.Sprintf("file-%d", f.nextID),
		Name:     name,
		MimeType: mimeType,
	}
	if parentID != "" {
		file.Parents = []string{parentID}
	}
	f.files[file.ID] = file
	return file
}

func (f *fakeDriveStore) findLocked(name, mimeType, parentID string) *repositories.File {
	// Stable order: lowest id wins, mirroring "first result"
	var best *repositories.File
	for _, file := range f.files {
		if file.Name != name || file.MimeType != mimeType {
			continue
		}
		if parentID != "" && (len(file.Parents) == 0 || file.Parents[0] != parentID) {
			continue
		}
		if best == nil || file.ID < best.ID {
			best = file
		}
	}
	return best
}

func (f *fakeDriveStore) FindDocument(ctx context.Context, name string) (*repositories.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file := f.findLocked(name, fakeDocumentMime, ""); file != nil {
		return file, nil
	}
	return nil, &domain.NotFoundError{Message: "document " + name + " not found"}
}

func (f *fakeDriveStore) FindFolder(ctx context.Context, name, parentID string) (*repositories.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file := f.findLocked(name, fakeFolderMime, parentID); file != nil {
		return file, nil
	}
	return nil, &domain.NotFoundError{Message: "folder " + name + " not found"}
}

func (f *fakeDriveStore) CreateFolder(ctx context.Context, name, parentID string) (*repositories.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createFolderCalls++
	return f.addLocked(name, fakeFolderMime, parentID), nil
}

func (f *fakeDriveStore) CreateDocument(ctx context.Context, name, folderID string) (*repositories.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createDocCalls++
	return f.addLocked(name, fakeDocumentMime, folderID), nil
}

func (f *fakeDriveStore) ShareWriter(ctx context.Context, fileID, email string) error {
	if f.shareErr != nil {
		return f.shareErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sharedWith[fileID] = append(f.sharedWith[fileID], email)
	return nil
}

func (f *fakeDriveStore) ShareAnyoneReader(ctx context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publicRead[fileID] = true
	return nil
}

func (f *fakeDriveStore) Upload(ctx context.Context, folderID, name, mimeType string, content io.Reader) (*repositories.File, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	file := f.addLocked(name, mimeType, folderID)
	file.ThumbnailLink = f.thumbnailLink
	file.WebContentLink = f.webContentLink
	return file, nil
}

func (f *fakeDriveStore) Metadata(ctx context.Context, fileID string) (*repositories.File, error) {
	if f.metadataErr != nil {
		return nil, f.metadataErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if file, ok := f.files[fileID]; ok {
		return file, nil
	}
	return nil, &domain.NotFoundError{Message: "file " + fileID + " not found"}
}

func (f *fakeDriveStore) About(ctx context.Context) (*repositories.Quota, error) {
	return &repositories.Quota{}, nil
}

func (f *fakeDriveStore) ListOwned(ctx context.Context, limit int64) ([]repositories.OwnedFile, error) {
	return nil, nil
}

func (f *fakeDriveStore) EmptyTrash(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emptyTrashCalls++
	return nil
}

// fakeDocWriter models a document body as an ordered list of tables,
// newest first (inserts happen at the document start).
type fakeDocWriter struct {
	tables []fakeTable

	insertErr error
	slotsErr  error
	fillErr   error
}

type fakeTable struct {
	text     string
	imageURL string
}

func (f *fakeDocWriter) InsertTable(ctx context.Context, docID string, rows, cols, index int64) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if rows != 1 || cols != 2 {
		return fmt.Errorf("unexpected table shape %dx%d", rows, cols)
	}
	if index != 1 {
		return fmt.Errorf("unexpected insert index %d", index)
	}
	f.tables = append([]fakeTable{{}}, f.tables...)
	return nil
}

func (f *fakeDocWriter) FirstTableSlots(ctx context.Context, docID string) (*repositories.TableSlots, error) {
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	if len(f.tables) == 0 {
		return nil, fmt.Errorf("no table in document")
	}
	return &repositories.TableSlots{Left: 5, Right: 7}, nil
}

func (f *fakeDocWriter) FillSlots(ctx context.Context, docID string, slots *repositories.TableSlots, text, imageURL string) error {
	if f.fillErr != nil {
		return f.fillErr
	}
	if len(f.tables) == 0 {
		return fmt.Errorf("no table to fill")
	}
	f.tables[0].text = text
	f.tables[0].imageURL = imageURL
	return nil
}

func (f *fakeDocWriter) TableCount(ctx context.Context, docID string) (int, error) {
	return len(f.tables), nil
}

// fakeMailSender records sent messages.
type fakeMailSender struct {
	err  error
	sent []sentMail
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

func (f *fakeMailSender) Send(ctx context.Context, to []string, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
