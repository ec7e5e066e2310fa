// simctl is the control tool for the deterministic simulation engine:
// it records headless sessions, stores them, and replays them to verify
// determinism.
//
// Usage:
//
//	simctl games                 - List registered simulations
//	simctl list                  - List stored recordings
//	simctl record <game>         - Record a headless demo session
//	simctl inspect <id|file>     - Show a recording's contents
//	simctl verify <id|file>      - Replay a recording twice and compare
//	simctl export <id> <file>    - Export a recording to a file
//	simctl import <file>         - Import a recording file into the store
//	simctl delete <id>           - Delete a stored recording
//
// Global flags:
//
//	--config <path>  - Config file (default: search order)
//	--db <path>      - Recording database (default: ~/.arcade-sim/recordings.db)
//	--log-level <l>  - Log level: debug, info, warn, error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/sim"
	"github.com/vovakirdan/arcade-sim/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-sim/internal/games/snake"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "simctl",
	Short: "Record and replay deterministic simulation sessions",
	Long: `simctl drives the simulation engine without a frontend: it records
sessions into a local database and replays them to verify that a
recording reproduces the original run exactly.

Examples:
  simctl games
  simctl record snake --seed demo --frames 600
  simctl list
  simctl verify <id>
  simctl export <id> session.json.zst
  simctl import session.json.zst`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to recording database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(deleteCmd)
}

// loadConfig resolves the effective configuration: file (or defaults)
// with command-line overrides applied on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "simctl",
	})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func engineConfig(cfg config.Config) sim.Config {
	return sim.Config{
		TickMultiplier: cfg.Engine.TickMultiplier,
		TickRate:       cfg.Engine.TickRate,
	}
}

func openStore(cfg config.Config) (*storage.Store, error) {
	return storage.Open(cfg.Storage.Path)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
