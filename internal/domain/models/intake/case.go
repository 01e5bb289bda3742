package intake

import "strings"

// DocumentNameSuffix is appended to the case id to form the case document
// name, e.g. "NIKE_2024_meta廣告上刊文件".
const DocumentNameSuffix = "_meta廣告上刊文件"

// ImageFolderSuffix is appended to the customer prefix to form the images
// subfolder name, e.g. "NIKE_img".
const ImageFolderSuffix = "_img"

// LegacyImageFolderName is the images subfolder name used by an older
// deployment. It is still accepted when found next to the case document.
const LegacyImageFolderName = "Images_圖檔"

// CaseRecord is one row of the master sheet: a customer email mapped to a
// case identifier. Uniqueness of the email is assumed, not enforced.
type CaseRecord struct {
	Email  string `json:"email"`
	CaseID string `json:"case_id"`
}

// CustomerPrefix derives the customer folder name from a case id: the
// substring before the first underscore, or the whole id if there is none.
// "NIKE_2024" -> "NIKE".
func CustomerPrefix(caseID string) string {
	if i := strings.Index(caseID, "_"); i >= 0 {
		return caseID[:i]
	}
	return caseID
}

// DocumentName returns the case document name for a case id.
func DocumentName(caseID string) string {
	return caseID + DocumentNameSuffix
}

// ImageFolderName returns the images subfolder name for a case id.
func ImageFolderName(caseID string) string {
	return CustomerPrefix(caseID) + ImageFolderSuffix
}

// DocumentURL returns the browser URL for a Google Doc id.
func DocumentURL(docID string) string {
	return "https://docs.google.com/document/d/" + docID + "/edit"
}

// NormalizeEmail canonicalizes an email for lookup: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
