package intake

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rhk9003/metaads/internal/domain"
	models "github.com/rhk9003/metaads/internal/domain/models/intake"
	"github.com/rhk9003/metaads/internal/domain/services"
)

type stubProvisioner struct {
	docID string
	err   error
	calls int
}

func (s *stubProvisioner) EnsureDocument(ctx context.Context, caseID, customerEmail string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.docID, nil
}

type stubUploader struct {
	asset *models.UploadedAsset
	err   error
	calls int
}

func (s *stubUploader) Upload(ctx context.Context, req *services.UploadRequest) (*models.UploadedAsset, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.asset, nil
}

type stubAppender struct {
	err   error
	calls int
	got   *models.AdSubmission
}

func (s *stubAppender) Append(ctx context.Context, docID string, sub *models.AdSubmission) (string, error) {
	s.calls++
	s.got = sub
	if s.err != nil {
		return "", s.err
	}
	return sub.BlockName(), nil
}

type stubNotifier struct {
	err   error
	calls int
	got   *models.SubmissionResult
}

func (s *stubNotifier) Notify(ctx context.Context, recipient string, result *models.SubmissionResult) error {
	s.calls++
	s.got = result
	return s.err
}

func validRequest() *services.SubmitRequest {
	return &services.SubmitRequest{
		CaseID:        "NIKE_2024",
		CustomerEmail: "cust@x.com",
		AdNameID:      "A01",
		ImageNameID:   "Pic01",
		Headline:      "限時優惠",
		LandingURL:    "https://example.com/landing",
		MainCopy:      "主文案",
		Blob:          pngBlob("creative.png"),
	}
}

func newSubmissionFixture() (*stubProvisioner, *stubUploader, *stubAppender, *stubNotifier, services.SubmissionService) {
	prov := &stubProvisioner{docID: "doc-1"}
	up := &stubUploader{asset: &models.UploadedAsset{
		FileID:      "img-1",
		Name:        "Pic01.png",
		DisplayLink: "https://lh3.example.com/img=s1600",
	}}
	app := &stubAppender{}
	not := &stubNotifier{}
	svc := NewSubmissionService(prov, up, app, not, testLogger())
	return prov, up, app, not, svc
}

func TestSubmitHappyPath(t *testing.T) {
	_, _, app, not, svc := newSubmissionFixture()

	result, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	if result.BlockName != "A01_Pic01" {
		t.Errorf("BlockName = %q, want A01_Pic01", result.BlockName)
	}
	if result.DocumentURL != models.DocumentURL("doc-1") {
		t.Errorf("DocumentURL = %q", result.DocumentURL)
	}
	if !result.ImageEmbedded {
		t.Error("ImageEmbedded = false, want true")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
	if app.got.ImageURL != "https://lh3.example.com/img=s1600" {
		t.Errorf("appended image url = %q", app.got.ImageURL)
	}
	if not.calls != 1 {
		t.Errorf("notifier calls = %d, want 1", not.calls)
	}
}

func TestSubmitUploadFailureDegrades(t *testing.T) {
	prov := &stubProvisioner{docID: "doc-1"}
	up := &stubUploader{err: &domain.UpstreamError{Message: "drive: quota"}}
	app := &stubAppender{}
	not := &stubNotifier{}
	svc := NewSubmissionService(prov, up, app, not, testLogger())

	result, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Submit error = %v, a failed upload must not fail the submission", err)
	}

	if app.calls != 1 {
		t.Fatalf("appender calls = %d, metadata must still be written", app.calls)
	}
	if app.got.ImageURL != "" {
		t.Errorf("appended image url = %q, want empty", app.got.ImageURL)
	}
	if result.ImageEmbedded {
		t.Error("ImageEmbedded = true, want false")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "image upload failed") {
		t.Errorf("Warnings = %v, want one image warning", result.Warnings)
	}
	if not.got == nil || not.got.ImageEmbedded {
		t.Error("notifier should see the image-missing result")
	}
}

func TestSubmitAppendFailureIsFatal(t *testing.T) {
	prov := &stubProvisioner{docID: "doc-1"}
	up := &stubUploader{asset: &models.UploadedAsset{DisplayLink: "https://x"}}
	app := &stubAppender{err: &domain.UpstreamError{Message: "docs: 500"}}
	not := &stubNotifier{}
	svc := NewSubmissionService(prov, up, app, not, testLogger())

	_, err := svc.Submit(context.Background(), validRequest())
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("error = %v, want upstream error", err)
	}
	if not.calls != 0 {
		t.Error("notifier ran for a failed submission")
	}
}

func TestSubmitNotifyFailureIsSoft(t *testing.T) {
	prov := &stubProvisioner{docID: "doc-1"}
	up := &stubUploader{asset: &models.UploadedAsset{DisplayLink: "https://x"}}
	app := &stubAppender{}
	not := &stubNotifier{err: errors.New("smtp: connection refused")}
	svc := NewSubmissionService(prov, up, app, not, testLogger())

	result, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Submit error = %v, a failed notification must not fail the submission", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "notification failed") {
		t.Errorf("Warnings = %v, want one notification warning", result.Warnings)
	}
}

func TestSubmitProvisionFailure(t *testing.T) {
	prov := &stubProvisioner{err: &domain.SetupError{Message: "root folder missing"}}
	up := &stubUploader{}
	app := &stubAppender{}
	svc := NewSubmissionService(prov, up, app, &stubNotifier{}, testLogger())

	_, err := svc.Submit(context.Background(), validRequest())
	if !errors.Is(err, domain.ErrSetup) {
		t.Fatalf("error = %v, want setup error", err)
	}
	if up.calls != 0 || app.calls != 0 {
		t.Error("downstream steps ran after provisioning failed")
	}
}

func TestSubmitValidation(t *testing.T) {
	_, _, _, _, svc := newSubmissionFixture()

	tests := []struct {
		name   string
		mutate func(*services.SubmitRequest)
	}{
		{"missing image", func(r *services.SubmitRequest) { r.Blob = nil }},
		{"missing case id", func(r *services.SubmitRequest) { r.CaseID = "" }},
		{"missing ad name", func(r *services.SubmitRequest) { r.AdNameID = "" }},
		{"ad name too long", func(r *services.SubmitRequest) { r.AdNameID = strings.Repeat("a", 101) }},
		{"bad landing url", func(r *services.SubmitRequest) { r.LandingURL = "not a url" }},
		{"bad email", func(r *services.SubmitRequest) { r.CustomerEmail = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if _, err := svc.Submit(context.Background(), req); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("error = %v, want validation error", err)
			}
		})
	}
}

func TestSubmitBatchBestEffort(t *testing.T) {
	prov := &stubProvisioner{docID: "doc-1"}
	up := &stubUploader{asset: &models.UploadedAsset{DisplayLink: "https://x"}}
	app := &stubAppender{}
	svc := NewSubmissionService(prov, up, app, &stubNotifier{}, testLogger())

	bad := validRequest()
	bad.AdNameID = ""
	good := validRequest()
	good.AdNameID = "A02"

	results := svc.SubmitBatch(context.Background(), []*services.SubmitRequest{bad, good})
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].OK || results[0].Error == "" {
		t.Errorf("results[0] = %+v, want failure with message", results[0])
	}
	if !results[1].OK || results[1].Result == nil {
		t.Errorf("results[1] = %+v, want success", results[1])
	}
	if results[1].AdNameID != "A02" {
		t.Errorf("results[1].AdNameID = %q", results[1].AdNameID)
	}
	if app.calls != 1 {
		t.Errorf("appender calls = %d, only the valid item should append", app.calls)
	}
}
