package history

import (
	"context"
	"encoding/json"
	"log/slog"

	"seo_article_writer/storage"
)

// KVBackend persists the sequence as a JSON array under one storage key.
type KVBackend struct {
	kv     storage.KV
	key    string
	logger *slog.Logger
}

func NewKVBackend(kv storage.KV, logger *slog.Logger) *KVBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &KVBackend{kv: kv, key: storage.KeyRecentArticles, logger: logger}
}

// Load treats an absent key and an unreadable value alike: both are an empty
// history.
func (b *KVBackend) Load(ctx context.Context) ([]Record, error) {
	raw, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		b.logger.Warn("discarding unreadable recent articles", "key", b.key, "err", err)
		return []Record{}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (b *KVBackend) Save(ctx context.Context, records []Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return b.kv.Set(ctx, b.key, string(raw))
}
