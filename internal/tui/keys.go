package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Clear   key.Binding
	Copy    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	All     key.Binding
	Active  key.Binding
	Done    key.Binding
	Help    key.Binding
	Quit    key.Binding

	// add / edit input
	Confirm key.Binding
	Cancel  key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "mark completed")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Clear:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev filter")),
		All:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Done:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap for browse mode.
func (k *keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Clear, k.NextTab, k.Help, k.Quit}
}

func (k *keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.Clear, k.Copy},
		{k.NextTab, k.PrevTab, k.All, k.Active, k.Done},
		{k.Help, k.Quit},
	}
}

func (k *keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
