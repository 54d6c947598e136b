// Package history keeps the bounded, newest-first archive of generated
// articles.
package history

import (
	"errors"
	"strings"
	"time"
)

// Capacity is the most records the store keeps.
const Capacity = 10

var (
	ErrNotFound   = errors.New("article not found")
	ErrIncomplete = errors.New("article record requires title and content")
)

// Record is one generated article. JSON names match the persisted layout.
type Record struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	TargetAudience string    `json:"targetAudience"`
	Keywords       string    `json:"keywords"`
	WordCount      string    `json:"wordCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (r Record) complete() bool {
	return strings.TrimSpace(r.Title) != "" && strings.TrimSpace(r.Content) != ""
}
