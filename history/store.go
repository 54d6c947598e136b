package history

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Backend loads and saves the whole sequence at once.
type Backend interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}

// Store is the only writer of the persisted sequence. Every mutation reads
// the full sequence, changes it and writes it back under mu.
type Store struct {
	mu      sync.Mutex
	backend Backend
	now     func() time.Time
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// WithClock replaces the time source used for ids and timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Insert puts rec at the front and drops whatever falls past Capacity. A
// zero CreatedAt is set to now, and the id is derived from creation time and
// kept above every id already stored.
func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	if !rec.complete() {
		return Record{}, ErrIncomplete
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.backend.Load(ctx)
	if err != nil {
		return Record{}, err
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	if rec.ID <= 0 {
		rec.ID = rec.CreatedAt.UnixMilli()
	}
	for _, r := range records {
		if r.ID >= rec.ID {
			rec.ID = r.ID + 1
		}
	}

	records = append([]Record{rec}, records...)
	if len(records) > Capacity {
		records = records[:Capacity]
	}
	if err := s.backend.Save(ctx, records); err != nil {
		return Record{}, fmt.Errorf("save recent articles: %w", err)
	}
	return rec, nil
}

// List returns the records newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Load(ctx)
}

func (s *Store) FindByID(ctx context.Context, id int64) (Record, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Record{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

// DeleteByID removes the record with id. A missing id is not an error.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if err := s.backend.Save(ctx, kept); err != nil {
		return fmt.Errorf("save recent articles: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Save(ctx, []Record{}); err != nil {
		return fmt.Errorf("save recent articles: %w", err)
	}
	return nil
}
