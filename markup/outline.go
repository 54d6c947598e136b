package markup

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tocThreshold is the heading count a TOC must exceed to be shown.
const tocThreshold = 2

const wordsPerMinute = 200

// Heading is a table-of-contents entry taken from rendered HTML.
type Heading struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Outline finds the h2 and h3 elements of fragment, gives each an anchor id
// (heading-0, heading-1, ...) and returns the rewritten fragment with them.
func Outline(fragment string) (string, []Heading, error) {
	if strings.TrimSpace(fragment) == "" {
		return fragment, nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", nil, fmt.Errorf("parse fragment: %w", err)
	}

	var headings []Heading
	doc.Find("h2, h3").Each(func(i int, s *goquery.Selection) {
		id := fmt.Sprintf("heading-%d", i)
		s.SetAttr("id", id)
		level := 2
		if goquery.NodeName(s) == "h3" {
			level = 3
		}
		headings = append(headings, Heading{ID: id, Level: level, Text: strings.TrimSpace(s.Text())})
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", nil, fmt.Errorf("render fragment: %w", err)
	}
	return out, headings, nil
}

// TableOfContents returns the headings worth listing, or nil when there are
// too few for a TOC to help.
func TableOfContents(headings []Heading) []Heading {
	if len(headings) <= tocThreshold {
		return nil
	}
	return headings
}

// RenderTOC writes a navigation block linking to each heading anchor.
func RenderTOC(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<nav class=\"toc\">\n<h3>สารบัญ</h3>\n<ul>\n")
	for _, h := range headings {
		class := "toc-h2"
		if h.Level == 3 {
			class = "toc-h3"
		}
		fmt.Fprintf(&b, "<li class=\"%s\"><a href=\"#%s\">%s</a></li>\n", class, h.ID, html.EscapeString(h.Text))
	}
	b.WriteString("</ul>\n</nav>")
	return b.String()
}

// PlainText returns the text content of fragment, the form used when an
// article is copied.
func PlainText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", err)
	}
	return strings.TrimSpace(doc.Find("body").Text()), nil
}

// ReadingStats is the word count and estimated reading time of a body.
type ReadingStats struct {
	Words   int `json:"words"`
	Minutes int `json:"minutes"`
}

// Estimate counts whitespace-separated tokens and rounds reading time up at
// 200 words per minute.
func Estimate(text string) ReadingStats {
	words := len(strings.Fields(text))
	return ReadingStats{
		Words:   words,
		Minutes: int(math.Ceil(float64(words) / wordsPerMinute)),
	}
}
