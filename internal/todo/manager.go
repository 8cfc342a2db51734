// Package todo owns the in-memory todo collection: the ordered items, the
// single inline edit session, and the observers notified after each change.
//
// Every operation runs to completion synchronously; a Manager is meant to
// be driven from one goroutine (the Bubble Tea update loop or a one-shot
// CLI command) and is not safe for concurrent use.
package todo

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
)

// Observer is called after every mutation with a snapshot of the items.
type Observer func(items []model.Item)

// EditSession tracks the item being edited inline and its draft text.
type EditSession struct {
	ID     string
	Buffer string
}

type Manager struct {
	items     []model.Item
	edit      *EditSession
	observers []*Observer

	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }
func WithIDGenerator(f func() string) Option { return func(m *Manager) { m.newID = f } }
func WithLogger(l *slog.Logger) Option { return func(m *Manager) { m.log = l } }

// New takes ownership of a copy of items (usually the result of a load).
func New(items []model.Item, opts ...Option) *Manager {
	m := &Manager{
		items: append([]model.Item{}, items...),
		now:   time.Now,
		newID: model.NewID,
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		m.log = logging.NewModuleLogger("todo", "manager")
	}
	return m
}

// Subscribe registers o; observers run in registration order.
// The returned func removes it.
func (m *Manager) Subscribe(o Observer) (unsubscribe func()) {
	p := &o
	m.observers = append(m.observers, p)
	return func() {
		for i, q := range m.observers {
			if q == p {
				m.observers = append(m.observers[:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) notify() {
	for _, o := range m.observers {
		(*o)(m.Items())
	}
}

// Items returns a copy of the collection, newest first.
func (m *Manager) Items() []model.Item {
	return append([]model.Item{}, m.items...)
}

func (m *Manager) Len() int { return len(m.items) }

func (m *Manager) Find(id string) (model.Item, bool) {
	if i := m.index(id); i >= 0 {
		return m.items[i], true
	}
	return model.Item{}, false
}

// HasCompleted reports whether ClearCompleted would remove anything.
func (m *Manager) HasCompleted() bool {
	for _, it := range m.items {
		if it.Completed {
			return true
		}
	}
	return false
}

// EditSession returns a copy of the open session, or nil.
func (m *Manager) EditSession() *EditSession {
	if m.edit == nil {
		return nil
	}
	s := *m.edit
	return &s
}

// Add prepends a new item with the trimmed text. Blank text is ignored.
func (m *Manager) Add(text string) (model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	now := model.Millis(m.now())
	it := model.Item{
		ID:        m.newID(),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.items = append([]model.Item{it}, m.items...)
	m.log.Debug("item added", "id", it.ID)
	m.notify()
	return it, true
}

// Toggle flips completion of id. Unknown ids change nothing, but the
// collection is still republished.
func (m *Manager) Toggle(id string) {
	if i := m.index(id); i >= 0 {
		m.items[i].Completed = !m.items[i].Completed
		m.touch(i)
		m.log.Debug("item toggled", "id", id, "completed", m.items[i].Completed)
	}
	m.notify()
}

// Delete removes id and closes the edit session if it targeted id.
func (m *Manager) Delete(id string) {
	if i := m.index(id); i >= 0 {
		m.items = append(m.items[:i], m.items[i+1:]...)
		m.log.Debug("item deleted", "id", id)
	}
	if m.edit != nil && m.edit.ID == id {
		m.edit = nil
	}
	m.notify()
}

// StartEdit opens a session on id seeded with currentText. An already
// open session is replaced and its draft discarded.
func (m *Manager) StartEdit(id, currentText string) {
	m.edit = &EditSession{ID: id, Buffer: currentText}
}

func (m *Manager) UpdateEditBuffer(text string) {
	if m.edit != nil {
		m.edit.Buffer = text
	}
}

func (m *Manager) CancelEdit() { m.edit = nil }

// SaveEdit applies the trimmed draft to the edited item and closes the
// session. Nothing happens without a session or with a blank draft.
func (m *Manager) SaveEdit() {
	if m.edit == nil {
		return
	}
	text := strings.TrimSpace(m.edit.Buffer)
	if text == "" {
		return
	}
	if i := m.index(m.edit.ID); i >= 0 {
		m.items[i].Text = text
		m.touch(i)
		m.log.Debug("item edited", "id", m.edit.ID)
	}
	m.edit = nil
	m.notify()
}

// ClearCompleted drops every completed item and always republishes.
func (m *Manager) ClearCompleted() {
	kept := m.items[:0]
	for _, it := range m.items {
		if !it.Completed {
			kept = append(kept, it)
		}
	}
	if n := len(m.items) - len(kept); n > 0 {
		m.log.Debug("completed items cleared", "count", n)
	}
	m.items = kept
	m.notify()
}

func (m *Manager) index(id string) int {
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// touch bumps UpdatedAt so it strictly increases even if the clock stalls
// or steps back.
func (m *Manager) touch(i int) {
	now := model.Millis(m.now())
	if now <= m.items[i].UpdatedAt {
		now = m.items[i].UpdatedAt + 1
	}
	m.items[i].UpdatedAt = now
}
