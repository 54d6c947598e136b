package markup

import (
	"regexp"
	"strings"
)

type lineKind int

const (
	blankLine lineKind = iota
	headingLine
	listItemLine
	plainLine
	markupLine
)

// line is one classified input line. text is already stripped of its marker.
type line struct {
	kind  lineKind
	level int
	text  string
}

var (
	// \p{Zs} covers the no-break and ideographic spaces models emit.
	listItemRe = regexp.MustCompile(`^[*-][\s\p{Zs}]+(.+)`)
	headingRe  = regexp.MustCompile(`^(#{1,4}) (.*)$`)
	// Lines that already open or close a block tag pass through untouched,
	// so converting rendered output a second time cannot wrap it again.
	markupRe = regexp.MustCompile(`^</?(h[1-6]|p|ul|li)[\s>]`)
)

// lex is the first pass: a single forward scan that tags every line.
func lex(text string) []line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")
	out := make([]line, 0, len(raw))
	for _, l := range raw {
		out = append(out, classify(l))
	}
	return out
}

func classify(raw string) line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return line{kind: blankLine}
	}
	if m := listItemRe.FindStringSubmatch(trimmed); m != nil {
		return line{kind: listItemLine, text: m[1]}
	}
	if m := headingRe.FindStringSubmatch(raw); m != nil {
		return line{kind: headingLine, level: len(m[1]), text: strings.TrimSpace(m[2])}
	}
	if markupRe.MatchString(trimmed) {
		return line{kind: markupLine, text: trimmed}
	}
	return line{kind: plainLine, text: trimmed}
}
