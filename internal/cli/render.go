package cli

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

const maxTextWidth = 80

// -------------- rendering helpers --------------

func listLines(items []model.Item, f model.Filter, group bool) []string {
	t := ui.Current()
	left := todo.RemainingCount(items)
	done := len(items) - left

	// Header + progress
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), done,
		ui.C(t.Pending, t.SymPending), left,
		ui.C(t.Accent, "Total"), len(items),
	)

	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(done, len(items), 28)), ""}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(todo.Visible(items, f), 1)...)
	}
	lines = append(lines, "")

	status := ui.ItemsLeft(left)
	if !group && f != model.FilterAll {
		status += ui.C(t.Muted, "  (showing "+f.String()+")")
	}
	lines = append(lines, status)
	if len(items) == 0 {
		lines = append(lines, ui.C(t.Muted, "Tip: add with `tada add \"Buy milk\"`"))
	}
	return lines
}

// flatLines numbers items from first, matching what `done`/`rm` expect.
func flatLines(items []model.Item, first int) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "No todos")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", first+i)
		text := runewidth.Truncate(it.Text, maxTextWidth, "...")
		box := ui.C(t.Muted, t.BoxUnchecked)
		if it.Completed {
			box = ui.C(t.Success, t.BoxChecked)
			text = ui.Struck(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", ui.Dim(idx), box, text))
	}
	return out
}

// groupLines numbers each section the way `ls --filter active` and
// `ls --filter completed` would.
func groupLines(items []model.Item) []string {
	t := ui.Current()
	active, completed := todo.Partition(items)

	var lines []string
	lines = append(lines, ui.C(t.Accent, "Active"))
	if len(active) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(active, 1)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Completed"))
	if len(completed) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(completed, 1)...)
	}
	return lines
}
