package handler

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/rhk9003/metaads/internal/config"
	models "github.com/rhk9003/metaads/internal/domain/models/intake"
	"github.com/rhk9003/metaads/internal/domain/services"
	"github.com/rhk9003/metaads/internal/httputil"
)

// IntakeHandler serves the operator-facing case-intake API.
type IntakeHandler struct {
	lookup     services.CaseLookup
	provision  services.Provisioner
	submission services.SubmissionService
	logger     *slog.Logger
}

// NewIntakeHandler creates the intake handler.
func NewIntakeHandler(
	lookup services.CaseLookup,
	provision services.Provisioner,
	submission services.SubmissionService,
	logger *slog.Logger,
) *IntakeHandler {
	return &IntakeHandler{
		lookup:     lookup,
		provision:  provision,
		submission: submission,
		logger:     logger,
	}
}

// HealthCheck responds 200 when the server is up.
// GET /health
func (h *IntakeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Lookup resolves a customer email to a case id.
// POST /api/lookup
// Returns 404 when the email has no row, 502 when the sheet is unreachable.
func (h *IntakeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		httputil.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}

	caseID, err := h.lookup.LookupCase(r.Context(), req.Email)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, LookupResponse{CaseID: caseID})
}

// Provision finds or creates the case document.
// POST /api/cases/{caseID}/provision
func (h *IntakeHandler) Provision(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("caseID")
	if caseID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "case id is required")
		return
	}

	var req ProvisionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CustomerEmail == "" {
		httputil.RespondError(w, http.StatusBadRequest, "customer email is required")
		return
	}

	docID, err := h.provision.EnsureDocument(r.Context(), caseID, req.CustomerEmail)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ProvisionResponse{
		DocumentID:  docID,
		DocumentURL: models.DocumentURL(docID),
	})
}

// Submit accepts one ad submission as a multipart form: text fields
// ad_name_id, image_name_id, headline, landing_url, main_copy,
// customer_email, plus the creative under the "image" file field.
// POST /api/cases/{caseID}/submissions
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("caseID")
	if caseID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "case id is required")
		return
	}

	// ParseMultipartForm's argument only caps in-memory buffering; the
	// reader limit is what actually rejects an oversized body
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	req := &services.SubmitRequest{
		CaseID:        caseID,
		CustomerEmail: r.FormValue("customer_email"),
		AdNameID:      r.FormValue("ad_name_id"),
		ImageNameID:   r.FormValue("image_name_id"),
		Headline:      r.FormValue("headline"),
		LandingURL:    r.FormValue("landing_url"),
		MainCopy:      r.FormValue("main_copy"),
		Blob:          blobFromPart(file, header),
	}

	result, err := h.submission.Submit(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// SubmitBatch accepts several ads in one request: a "manifest" form field
// holding a JSON array of ad metadata, plus one file part per entry whose
// field name equals the entry's image_name_id. Items run sequentially;
// failures are reported per item and do not abort the rest.
// POST /api/cases/{caseID}/submissions/batch
func (h *IntakeHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("caseID")
	if caseID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "case id is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	var manifest []batchManifestItem
	if err := json.Unmarshal([]byte(r.FormValue("manifest")), &manifest); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "manifest must be a JSON array of ad metadata")
		return
	}
	if len(manifest) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "manifest is empty")
		return
	}
	if len(manifest) > config.MaxBatchItems {
		httputil.RespondError(w, http.StatusBadRequest, "too many batch items")
		return
	}

	customerEmail := r.FormValue("customer_email")

	reqs := make([]*services.SubmitRequest, 0, len(manifest))
	var openFiles []multipart.File
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

	for _, item := range manifest {
		req := &services.SubmitRequest{
			CaseID:        caseID,
			CustomerEmail: customerEmail,
			AdNameID:      item.AdNameID,
			ImageNameID:   item.ImageNameID,
			Headline:      item.Headline,
			LandingURL:    item.LandingURL,
			MainCopy:      item.MainCopy,
		}

		if file, header, err := r.FormFile(item.ImageNameID); err == nil {
			openFiles = append(openFiles, file)
			req.Blob = blobFromPart(file, header)
		}

		reqs = append(reqs, req)
	}

	h.logger.Info("batch submission started", "case_id", caseID, "items", len(reqs))
	results := h.submission.SubmitBatch(r.Context(), reqs)

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func blobFromPart(file multipart.File, header *multipart.FileHeader) *models.ImageBlob {
	return &models.ImageBlob{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Content:  file,
	}
}
