// Package tui is the interactive todo screen: add input, filter tabs,
// the item list with inline editing, and the remaining-items status line.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type Option func(*Model)

// WithClipboard replaces the system clipboard writer used by the copy key.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyText = write }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithFilter sets the initially selected tab.
func WithFilter(f model.Filter) Option {
	return func(m *Model) { m.filter = f }
}

type Model struct {
	mgr  *todo.Manager
	rs   *renderState
	keys *keyMap

	list  list.Model
	input textinput.Model
	help  help.Model

	filter model.Filter
	mode   mode

	status    string
	statusErr bool

	width, height int

	copyText func(string) error
	log      *slog.Logger
}

// New builds the screen over mgr and subscribes its render observer.
// Subscribe persistence on mgr first so saves run before redraws.
func New(mgr *todo.Manager, opts ...Option) Model {
	rs := &renderState{items: mgr.Items(), dirty: true}
	mgr.Subscribe(func(items []model.Item) {
		rs.items = items
		rs.dirty = true
	})

	l := list.New(nil, itemDelegate{rs: rs}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.Styles.PaginationStyle = helpStyle
	// quitting and help are handled here, not by the list
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0 // unlimited, like the list itself

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.FullKey = helpStyle
	h.Styles.FullDesc = helpStyle

	m := Model{
		mgr:      mgr,
		rs:       rs,
		keys:     newKeyMap(),
		list:     l,
		input:    ti,
		help:     h,
		width:    defaultWidth,
		height:   defaultHeight,
		copyText: clipboard.WriteAll,
	}
	for _, o := range opts {
		o(&m)
	}
	if m.log == nil {
		m.log = logging.NewModuleLogger("tui", "model")
	}
	m.resize()
	m.sync()
	return m
}

// Run starts the Bubble Tea program on the alternate screen.
func Run(mgr *todo.Manager, opts ...Option) error {
	p := tea.NewProgram(New(mgr, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Update and View implement Bubble Tea's Model on Model
func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		m.syncEditLine()
		return m, nil
	}
	if m.mode != modeBrowse {
		return m.updateInput(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.status, m.statusErr = "", false
	sel, hasSel := m.selected()

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(km, m.keys.Add):
		m.openInput(modeAdd, "", "What needs to be done?")
		return m, textinput.Blink

	case key.Matches(km, m.keys.Edit) && hasSel:
		m.mgr.StartEdit(sel.ID, sel.Text)
		m.rs.editID = sel.ID
		m.openInput(modeEdit, sel.Text, "Edit item...")
		return m, textinput.Blink

	case key.Matches(km, m.keys.Toggle) && hasSel:
		m.mgr.Toggle(sel.ID)

	case key.Matches(km, m.keys.Delete) && hasSel:
		m.mgr.Delete(sel.ID)

	case key.Matches(km, m.keys.Clear):
		m.mgr.ClearCompleted()

	case key.Matches(km, m.keys.Copy) && hasSel:
		if err := m.copyText(sel.Text); err != nil {
			m.log.Warn("clipboard write failed", "error", err)
			m.setStatus("clipboard unavailable", true)
		} else {
			m.setStatus("copied to clipboard", false)
		}

	case key.Matches(km, m.keys.NextTab):
		m.setFilter(m.filter.Next())
	case key.Matches(km, m.keys.PrevTab):
		m.setFilter(m.filter.Prev())
	case key.Matches(km, m.keys.All):
		m.setFilter(model.FilterAll)
	case key.Matches(km, m.keys.Active):
		m.setFilter(model.FilterActive)
	case key.Matches(km, m.keys.Done):
		m.setFilter(model.FilterCompleted)

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.refreshKeys()
		return m, cmd
	}

	m.sync()
	return m, nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Cancel):
			if m.mode == modeEdit {
				m.mgr.CancelEdit()
			}
			m.closeInput()
			return m, nil

		case km.Type == tea.KeyEnter:
			if strings.TrimSpace(m.input.Value()) == "" {
				m.setStatus("Text cannot be empty", true)
				return m, nil
			}
			added := false
			if m.mode == modeAdd {
				_, added = m.mgr.Add(m.input.Value())
			} else {
				m.mgr.SaveEdit()
			}
			m.closeInput()
			m.sync()
			if added {
				m.list.Select(0)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeEdit {
		m.mgr.UpdateEditBuffer(m.input.Value())
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.status, m.statusErr = "", false
	}
	m.refreshKeys()
	m.syncEditLine()
	return m, cmd
}

func (m *Model) openInput(md mode, value, placeholder string) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.refreshKeys()
	m.resize()
	m.syncEditLine()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.SetValue("")
	m.input.Blur()
	m.rs.editID = ""
	m.rs.editLine = ""
	m.refreshKeys()
	m.resize()
}

// syncEditLine hands the delegate the rendered input for the row being
// edited. View only reads it.
func (m *Model) syncEditLine() {
	if m.mode == modeEdit {
		m.rs.editLine = m.input.View()
	}
}

func (m *Model) setFilter(f model.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.rs.dirty = true
	m.list.ResetSelected()
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return li.Item, true
}

// sync rebuilds the visible rows after the render observer or a filter
// change marked them dirty.
func (m *Model) sync() {
	if m.rs.dirty {
		m.rs.dirty = false
		visible := todo.Visible(m.rs.items, m.filter)
		rows := make([]list.Item, len(visible))
		for i, it := range visible {
			rows[i] = listItem{it}
		}
		idx := m.list.Index()
		m.list.SetItems(rows)
		if idx >= len(rows) {
			idx = len(rows) - 1
		}
		if idx >= 0 {
			m.list.Select(idx)
		}
	}
	m.refreshKeys()
}

// refreshKeys enables only the actions that make sense right now, which
// also hides the disabled ones from the help line.
func (m *Model) refreshKeys() {
	browsing := m.mode == modeBrowse
	sel, hasSel := m.selected()
	for _, b := range []*key.Binding{&m.keys.Edit, &m.keys.Toggle, &m.keys.Delete, &m.keys.Copy} {
		b.SetEnabled(browsing && hasSel)
	}
	m.keys.Clear.SetEnabled(browsing && m.mgr.HasCompleted())

	if hasSel && sel.Completed {
		m.keys.Toggle.SetHelp("space", "mark active")
	} else {
		m.keys.Toggle.SetHelp("space", "mark completed")
	}
	m.keys.Confirm.SetEnabled(strings.TrimSpace(m.input.Value()) != "")
}

func (m *Model) resize() {
	w := m.width - 4 // border + padding
	if w < 20 {
		w = 20
	}
	// header, tabs, blank, blank, status, help, border
	h := m.height - 8
	if m.help.ShowAll {
		h -= 4
	}
	if m.mode == modeAdd {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(w, h)
	m.input.Width = w - 6
	m.help.Width = w
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView() + "\n")
	b.WriteString(m.tabsView() + "\n\n")

	if len(m.list.Items()) == 0 {
		b.WriteString(mutedStyle.Render("No todos"))
	} else {
		b.WriteString(m.list.View())
	}

	if m.mode == modeAdd {
		title := "Add new item"
		if m.status != "" && m.statusErr {
			title += ": " + errorStyle.Render(m.status)
		}
		b.WriteString("\n" + boxStyle.Render(title+"\n"+m.input.View()))
	}

	b.WriteString("\n\n" + m.statusView() + "\n")
	if m.mode == modeBrowse {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.inputHelp()))
	}
	return boxStyle.Render(b.String())
}

// header with live counts
func (m Model) headerView() string {
	items := m.rs.items
	left := todo.RemainingCount(items)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), len(items)-left,
		pendingStyle.Render("•"), left,
		accentStyle.Render("Total"), len(items),
	)
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		style := tabStyle
		if f == m.filter {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(f.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) statusView() string {
	parts := []string{ui.ItemsLeft(todo.RemainingCount(m.rs.items))}

	if m.mgr.HasCompleted() {
		parts = append(parts, dangerStyle.Render("C clear completed"))
	} else {
		parts = append(parts, mutedStyle.Render("clear completed"))
	}

	switch {
	case m.status == "":
	case m.statusErr && m.mode == modeAdd:
		// shown in the input box title
	case m.statusErr:
		parts = append(parts, errorStyle.Render(m.status))
	default:
		parts = append(parts, successStyle.Render(m.status))
	}
	return strings.Join(parts, "   ")
}
