package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/mikanfactory/jopen/internal/action"
	"github.com/mikanfactory/jopen/internal/config"
	"github.com/mikanfactory/jopen/internal/git"
	"github.com/mikanfactory/jopen/internal/jira"
	"github.com/mikanfactory/jopen/internal/model"
	"github.com/mikanfactory/jopen/internal/reconcile"
	"github.com/mikanfactory/jopen/internal/tui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var configPath string
	var dir string

	rootCmd := &cobra.Command{
		Use:     "jopen",
		Short:   "Pick a git branch, annotated with its Jira issue",
		Long:    "List local branches together with the Jira issues assigned to you and check out the one you select.",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, os.Getenv)
			if err != nil {
				return err
			}

			logger, closeLog, err := newLogger(cfg.DebugLog)
			if err != nil {
				return err
			}
			defer closeLog()

			runner := git.OSCommandRunner{Timeout: cfg.Git.Timeout}
			root, err := resolveRepoDir(runner, dir)
			if err != nil {
				return err
			}

			refresher := &action.Refresher{
				Branches: git.Repo{Runner: runner, Dir: root},
				Issues:   jira.NewClient(cfg.Jira, logger),
				Options:  reconcile.Options{IgnoreCase: cfg.Jira.IgnoreCase},
				Logger:   logger,
			}

			return runUI(cfg, refresher, root, stdin, stdout)
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&dir, "dir", "", "repository directory (default: current directory)")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func runUI(cfg model.Config, refresher *action.Refresher, root string, stdin io.Reader, stdout io.Writer) error {
	zone.NewGlobal()

	m := tui.NewModel(cfg, refresher, root)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(stdin),
		tea.WithOutput(stdout),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// resolveRepoDir returns the top-level directory of the repository containing dir.
func resolveRepoDir(runner git.CommandRunner, dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	root, err := runner.Run(abs, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s", abs)
	}
	return strings.TrimSpace(root), nil
}

// newLogger opens path for appending and returns a slog logger writing to it.
// An empty path discards all output, since the terminal belongs to the UI.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating debug log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening debug log: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
