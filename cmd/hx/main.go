// Package main is the entry point for the hx editor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/j0lol/hxzed/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	settings []string
	keymap   string
	script   string
	logLevel string
	logFile  string
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "hx [files...]",
		Short: "A terminal editor with a Helix-style modal layer",
		Long: `hx opens the given files in a terminal editor. The Helix-style modal
layer is controlled by the helix_mode setting, the HX_HELIX_MODE
environment variable, or ctrl-t at runtime.

Settings files are read lowest precedence first. Without --settings,
hx reads $XDG_CONFIG_HOME/hx/settings.json and then .hx/settings.toml
in the working directory.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), f, args)
		},
	}

	cmd.Flags().StringArrayVar(&f.settings, "settings", nil, "settings file (repeatable, later files win)")
	cmd.Flags().StringVar(&f.keymap, "keymap", "", "user keymap file (default $XDG_CONFIG_HOME/hx/keymap.yaml)")
	cmd.Flags().StringVar(&f.script, "script", "", "Lua script to run at startup")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "log file (default $XDG_CONFIG_HOME/hx/hx.log)")
	return cmd
}

func runEditor(parent context.Context, f flags, files []string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	level, err := app.ParseLogLevel(f.logLevel)
	if err != nil {
		return err
	}
	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = level
	logCfg.Path = f.logFile
	if logCfg.Path == "" {
		logCfg.Path = configFile("hx.log")
	}
	logger, closer, err := app.NewLogger(logCfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := app.Options{
		SettingsPaths: f.settings,
		KeymapPath:    f.keymap,
		ScriptPath:    f.script,
		Files:         files,
		Logger:        logger,
	}
	if len(opts.SettingsPaths) == 0 {
		opts.SettingsPaths = defaultSettingsPaths()
	}
	if opts.KeymapPath == "" {
		opts.KeymapPath = configFile("keymap.yaml")
	}

	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.Run(ctx, screen); err != nil {
		logger.Error("run failed", "error", err)
		return err
	}
	return nil
}

// defaultSettingsPaths returns the user settings file followed by the
// workspace settings file.
func defaultSettingsPaths() []string {
	var paths []string
	if user := configFile("settings.json"); user != "" {
		paths = append(paths, user)
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, ".hx", "settings.toml"))
	}
	return paths
}

// configFile returns name inside the user config directory, or "" if
// there is none.
func configFile(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hx", name)
}
