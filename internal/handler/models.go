package handler

// LookupRequest asks for the case id behind a customer email.
type LookupRequest struct {
	Email string `json:"email"`
}

// LookupResponse carries the resolved case id.
type LookupResponse struct {
	CaseID string `json:"case_id"`
}

// ProvisionRequest triggers find-or-create of the case document.
type ProvisionRequest struct {
	CustomerEmail string `json:"customer_email"`
}

// ProvisionResponse identifies the provisioned case document.
type ProvisionResponse struct {
	DocumentID  string `json:"document_id"`
	DocumentURL string `json:"document_url"`
}

// batchManifestItem is one entry of the batch submission manifest. The
// image file for the entry is the multipart part whose form field name
// equals ImageNameID.
type batchManifestItem struct {
	AdNameID    string `json:"ad_name_id"`
	ImageNameID string `json:"image_name_id"`
	Headline    string `json:"headline"`
	LandingURL  string `json:"landing_url"`
	MainCopy    string `json:"main_copy"`
}
