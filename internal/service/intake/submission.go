package intake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/rhk9003/metaads/internal/config"
	"github.com/rhk9003/metaads/internal/domain"
	models "github.com/rhk9003/metaads/internal/domain/models/intake"
	"github.com/rhk9003/metaads/internal/domain/services"
)

type submissionService struct {
	provisioner services.Provisioner
	uploader    services.AssetUploader
	appender    services.DocumentAppender
	notifier    services.Notifier
	logger      *slog.Logger
}

// NewSubmissionService wires the full intake flow for one ad submission.
func NewSubmissionService(
	provisioner services.Provisioner,
	uploader services.AssetUploader,
	appender services.DocumentAppender,
	notifier services.Notifier,
	logger *slog.Logger,
) services.SubmissionService {
	return &submissionService{
		provisioner: provisioner,
		uploader:    uploader,
		appender:    appender,
		notifier:    notifier,
		logger:      logger,
	}
}

// Submit runs provision -> upload -> append -> notify. The upload and the
// notification are degradable: their failures become warnings and the
// submission still succeeds once the append lands. The append itself is
// authoritative; its failure fails the submission.
func (s *submissionService) Submit(ctx context.Context, req *services.SubmitRequest) (*models.SubmissionResult, error) {
	if err := validateSubmitRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	docID, err := s.provisioner.EnsureDocument(ctx, req.CaseID, req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	sub := &models.AdSubmission{
		ID:          uuid.NewString(),
		CaseID:      req.CaseID,
		AdNameID:    req.AdNameID,
		ImageNameID: req.ImageNameID,
		Headline:    req.Headline,
		LandingURL:  req.LandingURL,
		MainCopy:    req.MainCopy,
		FillTime:    time.Now(),
	}

	var warnings []string

	asset, err := s.uploader.Upload(ctx, &services.UploadRequest{
		CaseID:      req.CaseID,
		DocumentID:  docID,
		ImageNameID: req.ImageNameID,
		Blob:        req.Blob,
	})
	if err != nil {
		// Metadata still gets written without the image.
		s.logger.Warn("image upload failed, continuing without image",
			"case_id", req.CaseID,
			"ad_name_id", req.AdNameID,
			"error", err,
		)
		warnings = append(warnings, fmt.Sprintf("image upload failed: %v", err))
	} else {
		sub.ImageURL = asset.DisplayLink
	}

	blockName, err := s.appender.Append(ctx, docID, sub)
	if err != nil {
		return nil, err
	}

	result := &models.SubmissionResult{
		BlockName:     blockName,
		DocumentID:    docID,
		DocumentURL:   models.DocumentURL(docID),
		ImageEmbedded: sub.ImageURL != "",
		Warnings:      warnings,
	}

	if err := s.notifier.Notify(ctx, req.CustomerEmail, result); err != nil {
		s.logger.Warn("notification failed",
			"case_id", req.CaseID,
			"recipient", req.CustomerEmail,
			"error", err,
		)
		result.Warnings = append(result.Warnings, fmt.Sprintf("notification failed: %v", err))
	}

	s.logger.Info("submission completed",
		"submission_id", sub.ID,
		"case_id", req.CaseID,
		"block_name", blockName,
		"image_embedded", result.ImageEmbedded,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// SubmitBatch processes items sequentially. A failing item is recorded and
// the remaining items continue; there is no all-or-nothing semantics.
func (s *submissionService) SubmitBatch(ctx context.Context, reqs []*services.SubmitRequest) []services.BatchItemResult {
	results := make([]services.BatchItemResult, 0, len(reqs))

	for i, req := range reqs {
		item := services.BatchItemResult{AdNameID: req.AdNameID}

		res, err := s.Submit(ctx, req)
		if err != nil {
			item.Error = err.Error()
			s.logger.Warn("batch item failed",
				"index", i,
				"ad_name_id", req.AdNameID,
				"error", err,
			)
		} else {
			item.OK = true
			item.Result = res
		}

		results = append(results, item)
	}

	return results
}

func validateSubmitRequest(req *services.SubmitRequest) error {
	if req.Blob == nil {
		return fmt.Errorf("image is required")
	}
	return validation.ValidateStruct(req,
		validation.Field(&req.CaseID, validation.Required),
		validation.Field(&req.AdNameID,
			validation.Required,
			validation.Length(1, config.MaxAdNameIDLength),
		),
		validation.Field(&req.ImageNameID, validation.Length(0, config.MaxAdNameIDLength)),
		validation.Field(&req.Headline, validation.Length(0, config.MaxHeadlineLength)),
		validation.Field(&req.MainCopy, validation.Length(0, config.MaxMainCopyLength)),
		validation.Field(&req.LandingURL, is.URL),
		validation.Field(&req.CustomerEmail, is.EmailFormat),
	)
}
