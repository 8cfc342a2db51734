// Package persist mirrors the todo collection into a single key-value slot.
//
// Both directions fail soft: anything unreadable loads as an empty list,
// and write failures are logged and dropped so the in-memory list stays
// authoritative for the rest of the session.
package persist

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
)

// Key names the slot holding the serialized collection.
const Key = "todo_app_items_v1"

// KV is the subset of store.Store the adapter needs.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type Adapter struct {
	kv  KV
	log *slog.Logger
}

func New(kv KV) *Adapter {
	return &Adapter{kv: kv, log: logging.NewModuleLogger("persist", "adapter")}
}

func (a *Adapter) WithLogger(l *slog.Logger) *Adapter {
	a.log = l
	return a
}

// Load returns the saved collection, or an empty one when the slot is
// missing, unreadable or not a JSON array of items.
func (a *Adapter) Load() []model.Item {
	raw, ok, err := a.kv.Get(Key)
	if err != nil {
		a.log.Warn("load failed, starting empty", "key", Key, "error", err)
		return []model.Item{}
	}
	if !ok {
		return []model.Item{}
	}

	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		a.log.Warn("stored items are corrupt, starting empty", "key", Key, "error", err)
		return []model.Item{}
	}
	return sanitize(items, a.log)
}

// Save overwrites the slot with items. Errors are logged, never returned.
func (a *Adapter) Save(items []model.Item) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		a.log.Warn("marshal items", "error", err)
		return
	}
	if err := a.kv.Set(Key, string(b)); err != nil {
		a.log.Warn("save failed, keeping in-memory state", "key", Key, "error", err)
		return
	}
	a.log.Debug("items saved", "count", len(items))
}

// Observer adapts Save to the manager's subscription contract.
func (a *Adapter) Observer() todo.Observer {
	return a.Save
}

// sanitize drops entries that would break the collection invariants:
// missing id, blank text or a repeated id. Timestamps are repaired so
// updatedAt is never before createdAt.
func sanitize(in []model.Item, log *slog.Logger) []model.Item {
	out := make([]model.Item, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, it := range in {
		if it.ID == "" || strings.TrimSpace(it.Text) == "" {
			log.Warn("dropping invalid stored item", "id", it.ID)
			continue
		}
		if _, dup := seen[it.ID]; dup {
			log.Warn("dropping duplicate stored item", "id", it.ID)
			continue
		}
		seen[it.ID] = struct{}{}
		if it.UpdatedAt < it.CreatedAt {
			it.UpdatedAt = it.CreatedAt
		}
		out = append(out, it)
	}
	return out
}
