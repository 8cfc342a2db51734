// Package store defines the key-value capability the todo list persists
// through, and opens one of the concrete backends by name.
package store

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// Store is a flat string key-value slot.
// Get reports ok=false when the key has never been written.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

const (
	KindMemory = "memory"
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Open returns the backend named by kind. path is a directory for the
// json backend and a database file for sqlite; memory ignores it.
func Open(kind, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindMemory:
		return memstore.New(), nil
	case "", KindJSON:
		s, err := jsonstore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("json store: %w", err)
		}
		return s, nil
	case KindSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store kind %q (want memory, json or sqlite)", kind)
}
