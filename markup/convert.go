// Package markup turns the small Markdown dialect produced by the article
// generator into HTML fragments, and derives reading metadata from them.
package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// BlockKind identifies a structural node of a Document.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	// BlockRaw holds a line that was already HTML block markup.
	BlockRaw
)

// Block is a single structural unit. Level is set for headings, Items for lists.
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
	Items []string
}

// Document is the intermediate form between the lexer and the renderer.
type Document struct {
	Blocks []Block
}

type parseState int

const (
	outside parseState = iota
	inList
)

// Parse runs both passes and returns the block sequence in document order.
// Only contiguous list-item lines are grouped; any other line, blank or not,
// closes the open list.
func Parse(text string) Document {
	var doc Document
	if text == "" {
		return doc
	}

	state := outside
	var items []string
	closeList := func() {
		if state == inList {
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockList, Items: items})
			items = nil
			state = outside
		}
	}

	for _, l := range lex(text) {
		if l.kind == listItemLine {
			state = inList
			items = append(items, l.text)
			continue
		}
		closeList()
		switch l.kind {
		case headingLine:
			if l.text != "" {
				doc.Blocks = append(doc.Blocks, Block{Kind: BlockHeading, Level: l.level, Text: l.text})
			}
		case plainLine:
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockParagraph, Text: l.text})
		case markupLine:
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockRaw, Text: l.text})
		}
	}
	closeList()
	return doc
}

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.+?)\*`)
)

// inline applies emphasis rewrites. Bold runs first so its delimiters are
// consumed before the single-star rule sees them.
func inline(s string) string {
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	return italicRe.ReplaceAllString(s, "<em>$1</em>")
}

// Render writes the document as an HTML fragment, one block per line.
func Render(doc Document) string {
	var b strings.Builder
	for i, blk := range doc.Blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch blk.Kind {
		case BlockHeading:
			fmt.Fprintf(&b, "<h%d>%s</h%d>", blk.Level, inline(blk.Text), blk.Level)
		case BlockParagraph:
			b.WriteString("<p>")
			b.WriteString(inline(blk.Text))
			b.WriteString("</p>")
		case BlockList:
			b.WriteString("<ul>\n")
			for _, item := range blk.Items {
				b.WriteString("<li>")
				b.WriteString(inline(item))
				b.WriteString("</li>\n")
			}
			b.WriteString("</ul>")
		case BlockRaw:
			b.WriteString(blk.Text)
		}
	}
	return b.String()
}

// Convert is Render(Parse(text)). It never fails; malformed input degrades
// to plain paragraphs.
func Convert(text string) string {
	return Render(Parse(text))
}
