package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/proptrack/internal/config"
	"github.com/dshills/proptrack/internal/logging"
	"github.com/dshills/proptrack/internal/renderer/backend"
)

type runOptions struct {
	configPath string
	logLevel   string
	logFile    string
	watch      bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive demo",
		Long: `Start the interactive tracker demo in the current terminal.

Running mode:  move the mouse to measure, click to set the origin,
               Tab to edit, h to hide or show, d for dark mode,
               p to pin the tracker, q to quit.
Editing mode:  type a value, Tab/Shift-Tab to move between rows,
               Enter to accept, Escape to cancel.

Logs go to --log-file. Without one, logging is discarded so records
do not corrupt the screen.`,
		Example: `  # Run with defaults
  proptrack run

  # Load settings and reload the theme whenever the file changes
  proptrack run --config ~/.config/proptrack.toml --watch

  # Debug logging to a file
  proptrack run --log-level debug --log-file /tmp/proptrack.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the configuration file when it changes")
	return cmd
}

func runDemo(ctx context.Context, opts runOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
		}
		cfg.Logging.Level = opts.logLevel
	}

	logger := logging.Nop()
	if opts.logFile != "" {
		lc := cfg.LoggingConfig()
		lc.OutputPaths = []string{opts.logFile}
		if logger, err = logging.New(lc); err != nil {
			return err
		}
	}
	defer func() { _ = logger.Sync() }()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer term.Shutdown()

	d, err := newDemo(term, cfg, logger)
	if err != nil {
		return err
	}

	if opts.watch && opts.configPath != "" {
		w, err := config.NewWatcher(opts.configPath, func(cfg *config.Config, err error) {
			term.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: reloadMsg{cfg: cfg, err: err}})
		}, config.WithWatcherLogger(logging.WithComponent(logger, "config")))
		if err != nil {
			return fmt.Errorf("watching configuration: %w", err)
		}
		defer func() { _ = w.Close() }()
	}

	logger.Info("demo started", zap.String("version", version), zap.String("config", opts.configPath))
	d.run(ctx)
	logger.Info("demo stopped")
	return nil
}
