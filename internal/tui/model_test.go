package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/persist"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/todo"
)

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

type fixture struct {
	mgr     *todo.Manager
	adapter *persist.Adapter
	copied  []string
}

func newFixture(t *testing.T, opts ...Option) (*fixture, Model) {
	t.Helper()
	f := &fixture{adapter: persist.New(memstore.New()).WithLogger(logging.Discard())}
	f.mgr = todo.New(f.adapter.Load(), todo.WithLogger(logging.Discard()))
	f.mgr.Subscribe(f.adapter.Observer())

	opts = append([]Option{
		WithLogger(logging.Discard()),
		WithClipboard(func(s string) error { f.copied = append(f.copied, s); return nil }),
	}, opts...)
	return f, New(f.mgr, opts...)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func addItem(t *testing.T, m Model, text string) Model {
	return send(t, m, runes("a"), runes(text), enter)
}

func TestAdd_PersistsAndShowsCount(t *testing.T) {
	f, m := newFixture(t)

	m = addItem(t, m, "Buy milk")

	items := f.mgr.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)
	assert.Equal(t, items, f.adapter.Load(), "saved on the same update")
	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.View(), "1 item left")
	assert.Contains(t, m.View(), "Buy milk")
}

func TestAdd_BlankIsRefused(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, runes("a"), runes("   "), enter)
	assert.Equal(t, modeAdd, m.mode, "input stays open")
	assert.Zero(t, f.mgr.Len())
	assert.Contains(t, m.View(), "Text cannot be empty")

	m = send(t, m, esc)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Zero(t, f.mgr.Len())
}

func TestAdd_NewestFirstAndSelected(t *testing.T) {
	f, m := newFixture(t)
	m = addItem(t, m, "A")
	m = addItem(t, m, "B")

	items := f.mgr.Items()
	assert.Equal(t, "B", items[0].Text)
	sel, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "B", sel.Text)
}

func TestToggleAndClearCompleted(t *testing.T) {
	f, m := newFixture(t)
	m = addItem(t, m, "X")

	assert.False(t, m.keys.Clear.Enabled(), "clear is disabled with nothing completed")

	m = send(t, m, runes("x"))
	require.True(t, f.mgr.Items()[0].Completed)
	assert.True(t, m.keys.Clear.Enabled())
	assert.Equal(t, "mark active", m.keys.Toggle.Help().Desc)
	assert.Contains(t, m.View(), "0 items left")

	m = send(t, m, runes("C"))
	assert.Zero(t, f.mgr.Len())
	assert.Empty(t, f.adapter.Load())
	assert.Contains(t, m.View(), "No todos")
}

func TestFilterTabs(t *testing.T) {
	f, m := newFixture(t)
	m = addItem(t, m, "one")
	m = addItem(t, m, "two")
	m = send(t, m, runes("x")) // completes "two"

	m = send(t, m, runes("3"))
	assert.Equal(t, model.FilterCompleted, m.filter)
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "two", m.list.Items()[0].(listItem).Text)
	assert.Contains(t, m.View(), "1 item left", "count uses the whole list")

	m = send(t, m, runes("2"))
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "one", m.list.Items()[0].(listItem).Text)

	// completing the only active item empties the active view
	m = send(t, m, runes("x"))
	assert.Empty(t, m.list.Items())
	assert.Contains(t, m.View(), "No todos")
	assert.Len(t, f.mgr.Items(), 2)

	m = send(t, m, tab, tab)
	assert.Equal(t, model.FilterAll, m.filter)
	assert.Len(t, m.list.Items(), 2)
}

func TestEdit_SaveAndCancel(t *testing.T) {
	f, m := newFixture(t)
	m = addItem(t, m, "Y")
	id := f.mgr.Items()[0].ID

	m = send(t, m, runes("e"))
	require.Equal(t, modeEdit, m.mode)
	require.NotNil(t, f.mgr.EditSession())
	assert.Equal(t, "Y", m.input.Value())

	m = send(t, m, backspace, runes("Z"))
	assert.Equal(t, "Z", f.mgr.EditSession().Buffer)

	m = send(t, m, enter)
	got, _ := f.mgr.Find(id)
	assert.Equal(t, "Z", got.Text)
	assert.Nil(t, f.mgr.EditSession())
	assert.Equal(t, modeBrowse, m.mode)

	m = send(t, m, runes("e"), runes(" draft"), esc)
	got, _ = f.mgr.Find(id)
	assert.Equal(t, "Z", got.Text)
	assert.Nil(t, f.mgr.EditSession())
	assert.Equal(t, modeBrowse, m.mode)
}

func TestLongText_KeptWholeOnAddAndEdit(t *testing.T) {
	f, m := newFixture(t)
	long := strings.Repeat("a", 250)

	m = addItem(t, m, long)
	require.Equal(t, 1, f.mgr.Len())
	assert.Equal(t, long, f.mgr.Items()[0].Text)

	m = send(t, m, runes("e"))
	assert.Equal(t, long, m.input.Value(), "edit field holds the full text")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnd}, enter)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, long, f.mgr.Items()[0].Text)
	assert.Equal(t, long, f.adapter.Load()[0].Text)
}

func TestEdit_RowFollowsInputWithoutView(t *testing.T) {
	_, m := newFixture(t)
	m = addItem(t, m, "Y")

	m = send(t, m, runes("e"), runes("Z"))
	assert.Contains(t, m.rs.editLine, "YZ")

	before := *m.rs
	assert.Contains(t, m.View(), "YZ")
	assert.Equal(t, before, *m.rs, "rendering leaves shared state alone")

	m = send(t, m, esc)
	assert.Empty(t, m.rs.editLine)
}

func TestEdit_BlankSaveRefused(t *testing.T) {
	f, m := newFixture(t)
	m = addItem(t, m, "Y")

	m = send(t, m, runes("e"), backspace)
	assert.False(t, m.keys.Confirm.Enabled())

	m = send(t, m, enter)
	assert.Equal(t, modeEdit, m.mode)
	require.NotNil(t, f.mgr.EditSession())
	assert.Equal(t, "Y", f.mgr.Items()[0].Text)
	assert.Contains(t, m.View(), "Text cannot be empty")
}

func TestDelete(t *testing.T) {
	f, m := newFixture(t)
	m = addItem(t, m, "gone")
	m = send(t, m, runes("d"))
	assert.Zero(t, f.mgr.Len())
	assert.Empty(t, f.adapter.Load())
	assert.False(t, m.keys.Delete.Enabled())
}

func TestCopy(t *testing.T) {
	f, m := newFixture(t)
	m = addItem(t, m, "copy me")
	m = send(t, m, runes("y"))
	assert.Equal(t, []string{"copy me"}, f.copied)
	assert.Contains(t, m.View(), "copied to clipboard")
}

func TestCopy_Failure(t *testing.T) {
	_, m := newFixture(t, WithClipboard(func(string) error { return errors.New("no display") }))
	m = addItem(t, m, "x")
	m = send(t, m, runes("y"))
	assert.Contains(t, m.View(), "clipboard unavailable")
}

func TestQuit(t *testing.T) {
	_, m := newFixture(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestStartsWithLoadedItemsAndFilter(t *testing.T) {
	mgr := todo.New([]model.Item{
		{ID: "1", Text: "active", CreatedAt: 1, UpdatedAt: 1},
		{ID: "2", Text: "done", Completed: true, CreatedAt: 1, UpdatedAt: 1},
	}, todo.WithLogger(logging.Discard()))

	m := New(mgr, WithLogger(logging.Discard()), WithFilter(model.FilterActive))
	require.Len(t, m.list.Items(), 1)
	assert.Contains(t, m.View(), "1 item left")
	assert.Contains(t, m.View(), "Active")
}

func TestWindowResize(t *testing.T) {
	_, m := newFixture(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 116, m.list.Width())
	assert.Equal(t, 32, m.list.Height())
}
