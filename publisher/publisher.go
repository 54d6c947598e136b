// Package publisher exports archived articles as standalone HTML documents.
package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"seo_article_writer/generator"
	"seo_article_writer/history"
	"seo_article_writer/markup"
)

const (
	RendererBasic    = "basic"
	RendererGoldmark = "goldmark"
)

// PublishParams describes the article to export and where to write it.
type PublishParams struct {
	Record   history.Record
	OutPath  string
	Renderer string
	Digest   string
}

// Publisher renders records into HTML pages.
type Publisher struct {
	logger *slog.Logger
	md     goldmark.Markdown
}

func New(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		logger: logger,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Publish writes the document for params.Record to params.OutPath and
// returns the path written.
func (p *Publisher) Publish(ctx context.Context, params PublishParams) (string, error) {
	if params.OutPath == "" {
		return "", errors.New("output path is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := p.Document(params)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(params.OutPath), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(params.OutPath, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", params.OutPath, err)
	}
	p.logger.Info("article exported", "id", params.Record.ID, "path", params.OutPath, "renderer", rendererName(params.Renderer))
	return params.OutPath, nil
}

// Document builds the full HTML page: meta description, reading time,
// table of contents and body.
func (p *Publisher) Document(params PublishParams) (string, error) {
	rec := params.Record
	if strings.TrimSpace(rec.Content) == "" {
		return "", errors.New("article has no content")
	}

	body, err := p.body(rec.Content, params.Renderer)
	if err != nil {
		return "", err
	}
	body, headings, err := markup.Outline(body)
	if err != nil {
		return "", err
	}

	digest := params.Digest
	if digest == "" {
		draft, err := generator.PostProcess(rec.Content, generator.Spec{Topic: rec.Title})
		if err != nil {
			return "", err
		}
		digest = draft.Digest
	}
	stats := markup.Estimate(rec.Content)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"th\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(rec.Title))
	fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", html.EscapeString(digest))
	if rec.Keywords != "" {
		fmt.Fprintf(&b, "<meta name=\"keywords\" content=\"%s\">\n", html.EscapeString(rec.Keywords))
	}
	b.WriteString("</head>\n<body>\n<article>\n")
	fmt.Fprintf(&b, "<div class=\"reading-time\">เวลาอ่าน: %d นาที · จำนวนคำ: %d คำ</div>\n", stats.Minutes, stats.Words)
	if toc := markup.RenderTOC(markup.TableOfContents(headings)); toc != "" {
		b.WriteString(toc)
		b.WriteByte('\n')
	}
	b.WriteString(body)
	b.WriteString("\n</article>\n")
	if !rec.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "<footer><time datetime=\"%s\">%s</time></footer>\n",
			rec.CreatedAt.Format(time.RFC3339), rec.CreatedAt.Format("2006-01-02 15:04"))
	}
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func (p *Publisher) body(md, renderer string) (string, error) {
	switch rendererName(renderer) {
	case RendererBasic:
		return markup.Convert(md), nil
	case RendererGoldmark:
		return mdToHTML(p.md, md)
	default:
		return "", fmt.Errorf("renderer %s not supported", renderer)
	}
}

func rendererName(r string) string {
	if r == "" {
		return RendererBasic
	}
	return strings.ToLower(r)
}

func mdToHTML(md goldmark.Markdown, src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return buf.String(), nil
}
