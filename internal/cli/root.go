package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/persist"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// usageError marks bad invocations; they exit with code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error { return usageError{fmt.Sprintf(format, args...)} }

// flags shared by every subcommand
type rootFlags struct {
	configPath string
	storeKind  string
	storePath  string
	theme      string
	logLevel   string
	color      bool
	noColor    bool
}

// app is what a subcommand works with once the store is open.
type app struct {
	cfg     config.Config
	store   store.Store
	adapter *persist.Adapter
	mgr     *todo.Manager
	log     *slog.Logger
	logFile io.Closer
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("close store", "error", err)
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{log: logging.Discard()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	ui.SetOutput(stdout, stderr)
	defer ui.SetOutput(nil, nil)

	err := root.Execute()
	a.close()
	if err == nil {
		return 0
	}

	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, ui.Dim("Run `tada help` for usage."))
		return 2
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	var f rootFlags
	var tuiFilter string

	root := &cobra.Command{
		Use:   "tada",
		Short: "A tiny todo list for the terminal",
		Long: `tada keeps a todo list in a local key-value store.

Run without a subcommand to open the interactive list, or use the
subcommands below from scripts.`,
		Example: `  tada add "Buy milk"
  tada ls --filter active
  tada done 2
  tada edit 1 "Buy oat milk"
  tada rm 3`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, f)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a, tuiFilter)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "config file (default ~/.tada/config.yaml)")
	pf.StringVar(&f.storeKind, "store", "", "storage backend: memory, json or sqlite")
	pf.StringVar(&f.storePath, "path", "", "data directory (json) or database file (sqlite)")
	pf.StringVar(&f.theme, "theme", "", "output theme: classic, neon or mono")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&f.color, "color", false, "force colored output")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	root.Flags().StringVarP(&tuiFilter, "filter", "f", "all", "initial filter: all, active or completed")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newEditCmd(a),
		newClearCmd(a),
		newTUICmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, opens the store and loads the list. The
// persistence observer is subscribed before anything else can be.
func (a *app) setup(cmd *cobra.Command, f rootFlags) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Override(f.storeKind, f.storePath, f.theme, f.logLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		return usageError{err.Error()}
	}
	ui.SetColorForcing(f.color, f.noColor)

	// the interactive screen owns the terminal
	if isInteractive(cmd) && !cfg.Log.ToFile() {
		cfg.Log.Output = "discard"
	}
	logger, closer, err := logging.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	a.cfg, a.log, a.logFile = cfg, logger, closer

	s, err := store.Open(cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return err
	}
	a.store = s
	a.adapter = persist.New(s)
	a.mgr = todo.New(a.adapter.Load())
	a.mgr.Subscribe(a.adapter.Observer())

	a.log.Debug("list loaded", "store", cfg.Store.Kind, "path", cfg.Store.Path, "items", a.mgr.Len())
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}
