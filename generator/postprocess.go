package generator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const digestLimit = 160

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// PostProcess validates the model output and fills the Draft metadata.
// The title falls back to the requested topic when the body has no h1.
func PostProcess(raw string, spec Spec) (Draft, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return Draft{}, ErrNoContent
	}

	title := extractTitle(md)
	if title == "" {
		title = strings.TrimSpace(spec.Topic)
	}
	digest := extractDigest(md)
	if digest == "" {
		digest = defaultDigest(md, digestLimit)
	}

	return Draft{
		Title:    title,
		Digest:   truncateRunes(digest, digestLimit),
		Markdown: md,
	}, nil
}

func extractTitle(md string) string {
	m := titleRe.FindStringSubmatch(md)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractDigest takes the first paragraph line that is neither a heading
// nor a list item.
func extractDigest(md string) string {
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- ") {
			continue
		}
		return strings.NewReplacer("**", "", "*", "").Replace(trimmed)
	}
	return ""
}

func defaultDigest(md string, limit int) string {
	joined := strings.Join(strings.Fields(md), " ")
	return truncateRunes(joined, limit)
}

// truncateRunes cuts on rune boundaries; Thai text is multi-byte.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit])
}
