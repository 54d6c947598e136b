package markup

import (
	"strings"
	"testing"
)

func TestOutlineAssignsAnchors(t *testing.T) {
	fragment := Convert("# Title\n\n## First\ntext\n### Detail\n## Second")

	out, headings, err := Outline(fragment)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if len(headings) != 3 {
		t.Fatalf("expected 3 headings, got %#v", headings)
	}
	want := []Heading{
		{ID: "heading-0", Level: 2, Text: "First"},
		{ID: "heading-1", Level: 3, Text: "Detail"},
		{ID: "heading-2", Level: 2, Text: "Second"},
	}
	for i, h := range want {
		if headings[i] != h {
			t.Fatalf("heading %d = %#v, want %#v", i, headings[i], h)
		}
	}
	if !strings.Contains(out, `<h2 id="heading-0">First</h2>`) {
		t.Fatalf("anchor missing from output: %q", out)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Fatalf("h1 should be left alone: %q", out)
	}
}

func TestOutlineEmpty(t *testing.T) {
	out, headings, err := Outline("")
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if out != "" || headings != nil {
		t.Fatalf("expected empty outline, got %q %#v", out, headings)
	}
}

func TestTableOfContentsThreshold(t *testing.T) {
	two := []Heading{{ID: "heading-0", Level: 2}, {ID: "heading-1", Level: 2}}
	if toc := TableOfContents(two); toc != nil {
		t.Fatalf("expected no TOC for two headings, got %#v", toc)
	}
	three := append(two, Heading{ID: "heading-2", Level: 3})
	if toc := TableOfContents(three); len(toc) != 3 {
		t.Fatalf("expected TOC with 3 entries, got %#v", toc)
	}
}

func TestRenderTOC(t *testing.T) {
	got := RenderTOC([]Heading{
		{ID: "heading-0", Level: 2, Text: "A & B"},
		{ID: "heading-1", Level: 3, Text: "C"},
	})
	if !strings.Contains(got, `<li class="toc-h2"><a href="#heading-0">A &amp; B</a></li>`) {
		t.Fatalf("h2 entry missing: %q", got)
	}
	if !strings.Contains(got, `<li class="toc-h3"><a href="#heading-1">C</a></li>`) {
		t.Fatalf("h3 entry missing: %q", got)
	}
	if RenderTOC(nil) != "" {
		t.Fatalf("expected empty TOC for no headings")
	}
}

func TestPlainText(t *testing.T) {
	got, err := PlainText("<h1>Title</h1>\n<p>some <strong>bold</strong> text</p>")
	if err != nil {
		t.Fatalf("PlainText: %v", err)
	}
	if got != "Title\nsome bold text" {
		t.Fatalf("unexpected plain text %q", got)
	}
}

func TestEstimate(t *testing.T) {
	if s := Estimate(""); s.Words != 0 || s.Minutes != 0 {
		t.Fatalf("unexpected stats for empty text: %#v", s)
	}
	if s := Estimate("one two  three\nfour"); s.Words != 4 || s.Minutes != 1 {
		t.Fatalf("unexpected stats: %#v", s)
	}
	long := strings.Repeat("word ", 201)
	if s := Estimate(long); s.Words != 201 || s.Minutes != 2 {
		t.Fatalf("unexpected stats for 201 words: %#v", s)
	}
}
