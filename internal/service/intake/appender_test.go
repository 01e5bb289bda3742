package intake

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rhk9003/metaads/internal/domain"
	models "github.com/rhk9003/metaads/internal/domain/models/intake"
)

func sampleSubmission(adNameID, imageNameID string) *models.AdSubmission {
	return &models.AdSubmission{
		ID:          "sub-1",
		CaseID:      "NIKE_2024",
		AdNameID:    adNameID,
		ImageNameID: imageNameID,
		Headline:    "限時優惠",
		LandingURL:  "https://example.com/landing",
		MainCopy:    "主文案內容",
		FillTime:    time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		ImageURL:    "https://lh3.example.com/img=s1600",
	}
}

func TestAppendWritesBlock(t *testing.T) {
	docs := &fakeDocWriter{}
	svc := NewDocumentAppender(docs, testLogger())

	blockName, err := svc.Append(context.Background(), "doc-1", sampleSubmission("A01", "Pic01"))
	if err != nil {
		t.Fatalf("Append error = %v", err)
	}
	if blockName != "A01_Pic01" {
		t.Errorf("blockName = %q, want A01_Pic01", blockName)
	}

	if len(docs.tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(docs.tables))
	}
	text := docs.tables[0].text
	for _, want := range []string{
		"廣告組合 ID: A01_Pic01",
		"填寫時間: 2024-05-01 10:30:00",
		"廣告名稱/編號: A01",
		"廣告標題: 限時優惠",
		"廣告到達網址: https://example.com/landing",
		"主文案內容",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("block text missing %q:\n%s", want, text)
		}
	}
	if docs.tables[0].imageURL != "https://lh3.example.com/img=s1600" {
		t.Errorf("image url = %q", docs.tables[0].imageURL)
	}
}

func TestAppendNewestFirst(t *testing.T) {
	docs := &fakeDocWriter{}
	svc := NewDocumentAppender(docs, testLogger())

	for _, ad := range []string{"A01", "A02", "A03"} {
		if _, err := svc.Append(context.Background(), "doc-1", sampleSubmission(ad, "Pic01")); err != nil {
			t.Fatalf("Append(%s) error = %v", ad, err)
		}
	}

	n, _ := docs.TableCount(context.Background(), "doc-1")
	if n != 3 {
		t.Fatalf("TableCount = %d, want 3", n)
	}
	// Earlier blocks stay below, untouched.
	for i, want := range []string{"A03", "A02", "A01"} {
		if !strings.Contains(docs.tables[i].text, "廣告名稱/編號: "+want) {
			t.Errorf("tables[%d] = %q, want block for %s", i, docs.tables[i].text, want)
		}
	}
}

func TestAppendWithoutImage(t *testing.T) {
	docs := &fakeDocWriter{}
	svc := NewDocumentAppender(docs, testLogger())

	sub := sampleSubmission("A01", "Pic01")
	sub.ImageURL = ""

	if _, err := svc.Append(context.Background(), "doc-1", sub); err != nil {
		t.Fatalf("Append error = %v", err)
	}
	if docs.tables[0].imageURL != "" {
		t.Errorf("image url = %q, want empty", docs.tables[0].imageURL)
	}
	if !strings.Contains(docs.tables[0].text, "對應圖片雲端網址: \n") {
		t.Error("metadata block should still carry the (empty) image url label")
	}
}

func TestAppendInsertFailure(t *testing.T) {
	docs := &fakeDocWriter{insertErr: errors.New("docs api: 500")}
	svc := NewDocumentAppender(docs, testLogger())

	if _, err := svc.Append(context.Background(), "doc-1", sampleSubmission("A01", "Pic01")); err == nil {
		t.Fatal("Append = nil, want error")
	}
}

func TestAppendNilSubmission(t *testing.T) {
	svc := NewDocumentAppender(&fakeDocWriter{}, testLogger())
	if _, err := svc.Append(context.Background(), "doc-1", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want validation error", err)
	}
}
