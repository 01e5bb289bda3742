package intake

import "testing"

func TestCustomerPrefix(t *testing.T) {
	tests := []struct {
		caseID string
		want   string
	}{
		{"NIKE_2024", "NIKE"},
		{"NIKE_2024_Q3", "NIKE"},
		{"ACME", "ACME"},
		{"_2024", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CustomerPrefix(tt.caseID); got != tt.want {
			t.Errorf("CustomerPrefix(%q) = %q, want %q", tt.caseID, got, tt.want)
		}
	}
}

func TestDocumentName(t *testing.T) {
	if got := DocumentName("NIKE_2024"); got != "NIKE_2024_meta廣告上刊文件" {
		t.Errorf("DocumentName = %q", got)
	}
}

func TestImageFolderName(t *testing.T) {
	if got := ImageFolderName("NIKE_2024"); got != "NIKE_img" {
		t.Errorf("ImageFolderName = %q", got)
	}
}

func TestDocumentURL(t *testing.T) {
	if got := DocumentURL("abc123"); got != "https://docs.google.com/document/d/abc123/edit" {
		t.Errorf("DocumentURL = %q", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A@X.Com", "a@x.com"},
		{"  a@x.com\t", "a@x.com"},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBlockName(t *testing.T) {
	sub := &AdSubmission{AdNameID: "A01", ImageNameID: "Pic01"}
	if got := sub.BlockName(); got != "A01_Pic01" {
		t.Errorf("BlockName = %q, want A01_Pic01", got)
	}
}
