package services

import (
	"context"

	models "github.com/rhk9003/metaads/internal/domain/models/intake"
)

// CaseLookup resolves a customer email to a case identifier via the master
// sheet.
type CaseLookup interface {
	// LookupCase returns the case id for an email. Returns a
	// domain.ErrNotFound-matching error when the email has no row, and a
	// domain.ErrUpstream-matching error when the sheet is unreachable.
	LookupCase(ctx context.Context, email string) (string, error)

	// ValidateHeaders checks that the live sheet has a recognizable
	// email column and case-id column, failing with a precise diagnostic.
	ValidateHeaders(ctx context.Context) error
}

// Provisioner ensures the case document exists and is shared.
type Provisioner interface {
	// EnsureDocument finds or creates the case document and returns its
	// id. Idempotent; repeat calls return the same id without creating
	// additional folders or documents.
	EnsureDocument(ctx context.Context, caseID, customerEmail string) (string, error)
}

// UploadRequest carries one creative into the per-customer image subfolder.
type UploadRequest struct {
	CaseID      string
	DocumentID  string
	ImageNameID string
	Blob        *models.ImageBlob
}

// AssetUploader stores a creative next to the case document and makes it
// fetchable by URL.
type AssetUploader interface {
	Upload(ctx context.Context, req *UploadRequest) (*models.UploadedAsset, error)
}

// DocumentAppender writes one submission into the case document.
type DocumentAppender interface {
	// Append inserts a new 1x2 table at the document start holding the
	// submission's metadata and image, and returns the block name.
	Append(ctx context.Context, docID string, sub *models.AdSubmission) (string, error)
}

// Notifier sends the confirmation email once data has landed. A nil or
// unconfigured mail transport makes it a no-op.
type Notifier interface {
	Notify(ctx context.Context, recipient string, result *models.SubmissionResult) error
}

// SubmitRequest is one ad submission as received from the operator.
type SubmitRequest struct {
	CaseID        string
	CustomerEmail string
	AdNameID      string
	ImageNameID   string
	Headline      string
	LandingURL    string
	MainCopy      string
	Blob          *models.ImageBlob
}

// BatchItemResult reports one item of a batch submission.
type BatchItemResult struct {
	AdNameID string                   `json:"ad_name_id"`
	OK       bool                     `json:"ok"`
	Error    string                   `json:"error,omitempty"`
	Result   *models.SubmissionResult `json:"result,omitempty"`
}

// SubmissionService orchestrates the full intake flow for one ad:
// provision -> upload (degradable) -> append -> notify (degradable).
type SubmissionService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*models.SubmissionResult, error)

	// SubmitBatch processes items sequentially with best-effort
	// semantics: a failing item is recorded and the rest continue.
	SubmitBatch(ctx context.Context, reqs []*SubmitRequest) []BatchItemResult
}
