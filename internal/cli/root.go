// Package cli defines Cobra command definitions for the intervu CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/intervu-dev/intervu/internal/archive"
	"github.com/intervu-dev/intervu/internal/config"
	"github.com/intervu-dev/intervu/internal/engine"
	"github.com/intervu-dev/intervu/internal/log"
	"github.com/intervu-dev/intervu/internal/tui"
	"github.com/intervu-dev/intervu/internal/tui/app"
)

var (
	serverURL string
	version   = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "intervu",
	Short: "Terminal client for practice interviews",
	Long: `Intervu runs mock interviews against a remote interview engine.
Pick a role, answer questions in the chat, and watch your phase and
progress advance. Finished transcripts are archived locally.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsTTY() {
			return cmd.Help()
		}

		dir, err := config.Dir()
		if err != nil {
			return err
		}

		cfg := loadConfig(dir)
		if serverURL != "" {
			cfg.Server.URL = serverURL
		}

		// Logging and archiving are best-effort; the interview runs without
		// them if the data directory is unusable.
		logger, err := log.NewLogger(dir)
		if err != nil {
			logger = nil
		}
		store, err := archive.NewStore(filepath.Join(dir, "archive.db"))
		if err != nil {
			store = nil
		} else {
			defer func() { _ = store.Close() }()
		}

		client := engine.New(cfg.Server.URL, cfg.RequestTimeout(), logger)
		return tui.Run(app.New(cfg, client, store, logger))
	},
}

// loadConfig reads config.yaml, falling back to defaults when missing or
// malformed. On first run the default config is written so the user has a
// file to edit.
func loadConfig(dir string) *config.Config {
	cfg, err := config.ReadConfig(dir)
	if err != nil {
		cfg = config.DefaultConfig()
		if _, statErr := os.Stat(filepath.Join(dir, "config.yaml")); os.IsNotExist(statErr) {
			_ = config.WriteConfig(dir, cfg)
		}
	}
	return cfg
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Interview engine URL (overrides config)")

	rootCmd.AddCommand(historyCmd)
}
