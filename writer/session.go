// Package writer ties the generator, the markup converter and the recent
// articles store into one user session.
package writer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"seo_article_writer/generator"
	"seo_article_writer/history"
	"seo_article_writer/markup"
	"seo_article_writer/storage"
)

// Session holds the credential and archive for the single local user.
type Session struct {
	kv     storage.KV
	recent *history.Store
	agent  *generator.Agent
	logger *slog.Logger

	mu     sync.RWMutex
	apiKey string
}

// Result is an article ready for display.
type Result struct {
	Article       history.Record      `json:"article"`
	AudienceLabel string              `json:"audience_label"`
	HTML          string              `json:"html"`
	TOC           []markup.Heading    `json:"toc,omitempty"`
	Reading       markup.ReadingStats `json:"reading"`
}

// NewSession loads the saved credential, if any.
func NewSession(ctx context.Context, kv storage.KV, recent *history.Store, agent *generator.Agent, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{kv: kv, recent: recent, agent: agent, logger: logger}
	key, ok, err := kv.Get(ctx, storage.KeyAPIKey)
	if err != nil {
		return nil, fmt.Errorf("load api key: %w", err)
	}
	if ok {
		s.apiKey = key
	}
	return s, nil
}

func (s *Session) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// SetAPIKey keeps key for later requests and persists it when non-empty.
func (s *Session) SetAPIKey(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
	if key == "" {
		return nil
	}
	if err := s.kv.Set(ctx, storage.KeyAPIKey, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	s.logger.Info("api key saved")
	return nil
}

// Generate validates req, asks the model for one article and archives it.
// Nothing is archived unless the model returned a non-empty body.
func (s *Session) Generate(ctx context.Context, req Request) (Result, error) {
	req = req.normalized()
	apiKey := s.APIKey()
	if err := validate(apiKey, req); err != nil {
		return Result{}, err
	}

	draft, err := s.agent.Generate(ctx, strings.TrimSpace(apiKey), generator.Spec{
		Topic:    req.Topic,
		Audience: req.TargetAudience,
		Keywords: req.Keywords,
		Length:   req.WordCount,
	})
	if err != nil {
		return Result{}, err
	}

	wordCount := req.WordCount
	if wordCount == "" {
		wordCount = generator.DefaultLength
	}
	rec, err := s.recent.Insert(ctx, history.Record{
		Title:          req.Topic,
		Content:        draft.Markdown,
		TargetAudience: req.TargetAudience,
		Keywords:       req.Keywords,
		WordCount:      wordCount,
	})
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("article archived", "id", rec.ID, "title", rec.Title)
	return Render(rec)
}

// Open renders an archived article.
func (s *Session) Open(ctx context.Context, id int64) (Result, error) {
	rec, err := s.recent.FindByID(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return Render(rec)
}

func (s *Session) Recent(ctx context.Context) ([]history.Record, error) {
	return s.recent.List(ctx)
}

func (s *Session) Delete(ctx context.Context, id int64) error {
	if err := s.recent.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info("article deleted", "id", id)
	return nil
}

func (s *Session) Clear(ctx context.Context) error {
	if err := s.recent.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("recent articles cleared")
	return nil
}

// Render converts rec for display and attaches its outline and reading stats.
func Render(rec history.Record) (Result, error) {
	html, headings, err := markup.Outline(markup.Convert(rec.Content))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Article:       rec,
		AudienceLabel: generator.AudienceLabel(rec.TargetAudience),
		HTML:          html,
		TOC:           markup.TableOfContents(headings),
		Reading:       markup.Estimate(rec.Content),
	}, nil
}

// PlainText is the copyable text of an archived article.
func (s *Session) PlainText(ctx context.Context, id int64) (string, error) {
	res, err := s.Open(ctx, id)
	if err != nil {
		return "", err
	}
	return markup.PlainText(res.HTML)
}
