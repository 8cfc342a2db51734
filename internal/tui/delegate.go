package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/Makepad-fr/tada/internal/model"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) FilterValue() string { return i.Text }

// renderState is shared between the Model copies Bubble Tea passes around
// and the row delegate. The manager's render observer writes into it.
type renderState struct {
	items []model.Item
	dirty bool

	// inline edit row
	editID   string
	editLine string
}

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	rs *renderState
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	box := mutedStyle.Render(boxUnchecked)
	if it.Completed {
		box = successStyle.Render(boxChecked)
	}

	text := it.Text
	if avail := m.Width() - 4; avail > 0 && d.rs.editID != it.ID {
		text = runewidth.Truncate(text, avail, "…")
	}
	switch {
	case d.rs.editID == it.ID:
		text = d.rs.editLine
	case it.Completed:
		text = doneStyle.Render(text)
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}
