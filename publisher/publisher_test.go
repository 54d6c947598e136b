package publisher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"seo_article_writer/history"
)

var sample = history.Record{
	ID:        1714550400000,
	Title:     "คู่มือ <SEO>",
	Content:   "# คู่มือ SEO\n\nบทนำสั้น ๆ\n\n## หนึ่ง\n\n* ก\n* ข\n\n## สอง\n\n### สาม\n\n| a | b |\n|---|---|\n| 1 | 2 |",
	Keywords:  "seo",
	CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
}

func TestDocumentBasic(t *testing.T) {
	doc, err := New(nil).Document(PublishParams{Record: sample})
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	for _, want := range []string{
		"<title>คู่มือ &lt;SEO&gt;</title>",
		`<meta name="description" content="บทนำสั้น ๆ">`,
		`<meta name="keywords" content="seo">`,
		`<nav class="toc">`,
		`<h2 id="heading-0">หนึ่ง</h2>`,
		"<li>ก</li>",
		`<time datetime="2024-05-01T09:00:00Z">`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "<table>") {
		t.Fatalf("basic renderer should not know tables")
	}
}

func TestDocumentGoldmark(t *testing.T) {
	doc, err := New(nil).Document(PublishParams{Record: sample, Renderer: "goldmark", Digest: "custom"})
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if !strings.Contains(doc, "<table>") {
		t.Fatalf("goldmark renderer should render GFM tables:\n%s", doc)
	}
	if !strings.Contains(doc, `content="custom"`) {
		t.Fatalf("explicit digest ignored")
	}
	if !strings.Contains(doc, `id="heading-0"`) {
		t.Fatalf("goldmark headings should be anchored too")
	}
}

func TestDocumentErrors(t *testing.T) {
	p := New(nil)
	if _, err := p.Document(PublishParams{Record: history.Record{Title: "x"}}); err == nil {
		t.Fatalf("expected error for empty content")
	}
	if _, err := p.Document(PublishParams{Record: sample, Renderer: "pandoc"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestPublishWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "export", "article.html")
	path, err := New(nil).Publish(context.Background(), PublishParams{Record: sample, OutPath: out})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Fatalf("unexpected export: %q", string(data)[:40])
	}
	if _, err := New(nil).Publish(context.Background(), PublishParams{Record: sample}); err == nil {
		t.Fatalf("expected error without output path")
	}
}
