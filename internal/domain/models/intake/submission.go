package intake

import (
	"io"
	"time"
)

// AdSubmission is one ad's metadata plus its creative image. It exists in
// memory only until appended to the case document; nothing is persisted
// locally.
type AdSubmission struct {
	ID          string    `json:"id"` // assigned per submission
	CaseID      string    `json:"case_id"`
	AdNameID    string    `json:"ad_name_id"`
	ImageNameID string    `json:"image_name_id"`
	Headline    string    `json:"headline,omitempty"`
	LandingURL  string    `json:"landing_url,omitempty"`
	MainCopy    string    `json:"main_copy,omitempty"`
	FillTime    time.Time `json:"fill_time"`

	// ImageURL is the display link of the uploaded asset, set after a
	// successful upload. Empty when the upload degraded.
	ImageURL string `json:"image_url,omitempty"`
}

// BlockName is the composite identifier written into the case document for
// this submission.
func (s *AdSubmission) BlockName() string {
	return s.AdNameID + "_" + s.ImageNameID
}

// ImageBlob carries the uploaded creative before it reaches Drive.
type ImageBlob struct {
	Filename string
	MIMEType string
	Content  io.Reader
}

// UploadedAsset is the stored creative in the per-customer image subfolder.
type UploadedAsset struct {
	FileID      string `json:"file_id"`
	Name        string `json:"name"`
	DisplayLink string `json:"display_link"` // thumbnail link, enlarged
	RawLink     string `json:"raw_link"`     // direct content link
}

// SubmissionResult reports one completed submission. Warnings carry the
// degradable failures (image upload, notification) that did not abort it.
type SubmissionResult struct {
	BlockName     string   `json:"block_name"`
	DocumentID    string   `json:"document_id"`
	DocumentURL   string   `json:"document_url"`
	ImageEmbedded bool     `json:"image_embedded"`
	Warnings      []string `json:"warnings,omitempty"`
}
