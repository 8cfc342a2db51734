package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// -------------- subcommands ----------------

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args:  minArgs(1, "usage: tada add <text...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := a.mgr.Add(strings.Join(args, " ")); !ok {
				return usagef("add: empty text")
			}
			ui.OK("added")
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var filter string
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    exactArgs(0, "usage: tada ls [--filter all|active|completed] [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return usageError{err.Error()}
			}
			ui.Panel(listLines(a.mgr.Items(), f, group))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "show all, active or completed items")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group output by active/completed")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "done <index|id>",
		Short: "Toggle completion of an item",
		Args:  exactArgs(1, "usage: tada done <index|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := resolve(a.mgr, filter, args[0])
			if err != nil {
				return err
			}
			a.mgr.Toggle(it.ID)
			if it.Completed {
				ui.OK("marked active")
			} else {
				ui.OK("marked completed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter the index refers to")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "rm <index|id>",
		Aliases: []string{"delete"},
		Short:   "Remove an item",
		Args:    exactArgs(1, "usage: tada rm <index|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := resolve(a.mgr, filter, args[0])
			if err != nil {
				return err
			}
			a.mgr.Delete(it.ID)
			ui.OK("removed")
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter the index refers to")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "edit <index|id> <text...>",
		Short: "Replace the text of an item",
		Args:  minArgs(2, "usage: tada edit <index|id> <text...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := resolve(a.mgr, filter, args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" {
				return usagef("edit: empty text")
			}
			a.mgr.StartEdit(it.ID, it.Text)
			a.mgr.UpdateEditBuffer(text)
			a.mgr.SaveEdit()
			ui.OK("edited")
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter the index refers to")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed items",
		Args:  exactArgs(0, "usage: tada clear"),
		RunE: func(cmd *cobra.Command, args []string) error {
			before := a.mgr.Len()
			a.mgr.ClearCompleted()
			ui.OK(fmt.Sprintf("cleared %d", before-a.mgr.Len()))
			return nil
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list (default)",
		Args:  exactArgs(0, "usage: tada tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a, filter)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "initial filter: all, active or completed")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tada %s\n", Version)
		},
	}
}

func runTUI(a *app, filter string) error {
	f, err := model.ParseFilter(filter)
	if err != nil {
		return usageError{err.Error()}
	}
	if err := tui.Run(a.mgr, tui.WithFilter(f), tui.WithLogger(a.log)); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// resolve finds the item named by ref: a 1-based index into the list as
// `tada ls --filter` shows it, or an item id.
func resolve(mgr *todo.Manager, filter, ref string) (model.Item, error) {
	f, err := model.ParseFilter(filter)
	if err != nil {
		return model.Item{}, usageError{err.Error()}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		visible := todo.Visible(mgr.Items(), f)
		if n < 1 || n > len(visible) {
			return model.Item{}, usagef("index out of range: have %d, got %d (run `tada ls` to see valid indexes)", len(visible), n)
		}
		return visible[n-1], nil
	}
	if it, ok := mgr.Find(ref); ok {
		return it, nil
	}
	return model.Item{}, usagef("no item with id %q", ref)
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{usage}
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError{usage}
		}
		return nil
	}
}
