// Package storage provides the small persisted key-value store the writer
// keeps its credential and recent articles in.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	// KeyAPIKey holds the generation endpoint credential.
	KeyAPIKey = "gemini-api-key"
	// KeyRecentArticles holds the serialized recent-articles list.
	KeyRecentArticles = "recent-articles"
)

// KV is a string key-value store. A missing key is reported with ok=false,
// never as an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store is a KV that owns resources to release when the program exits.
type Store interface {
	KV
	io.Closer
}

// Open builds the store named by driver. path is ignored for "memory".
func Open(driver, path string) (Store, error) {
	var (
		st  Store
		err error
	)
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "file":
		st, err = NewFile(path)
	case "sqlite":
		st, err = NewSQLite(path)
	case "memory":
		st = NewMemory()
	default:
		return nil, fmt.Errorf("storage driver %s not supported", driver)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}
