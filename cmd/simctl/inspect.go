package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/event"
	"github.com/vovakirdan/arcade-sim/internal/replay"
	"github.com/vovakirdan/arcade-sim/internal/storage"
)

var flagInspectEvents bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <id|file>",
	Short: "Show a recording's contents",
	Long: `Shows the header and timing summary of a recording, loaded either
from the database by ID or from an exported file.

Examples:
  simctl inspect 4f6b2c…
  simctl inspect session.json.zst --events`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagInspectEvents, "events", false, "Dump the full event log")
}

// resolveRecording loads a recording from a file path if one exists at
// the argument, otherwise from the database by ID. The returned game ID
// is empty when the source does not carry one.
func resolveRecording(cfg config.Config, arg string) (*replay.Recording, string, error) {
	if _, err := os.Stat(arg); err == nil {
		rec, err := storage.ReadFile(arg)
		if err != nil {
			return nil, "", err
		}
		game, _ := rec.Metadata.Extra["game"].(string)
		return rec, game, nil
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, "", err
	}
	defer store.Close()

	rec, err := store.LoadRecording(arg)
	if err != nil {
		return nil, "", err
	}
	game, err := store.GameID(arg)
	if err != nil {
		return nil, "", err
	}
	return rec, game, nil
}

func runInspect(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v", err)
	}

	rec, game, err := resolveRecording(cfg, args[0])
	if err != nil {
		fatalf("Error: %v", err)
	}

	fmt.Printf("Seed:        %s\n", rec.Seed)
	if game != "" {
		fmt.Printf("Game:        %s\n", game)
	}
	fmt.Printf("Version:     %s\n", rec.Metadata.Version)
	fmt.Printf("Total ticks: %d\n", rec.TotalTicks)
	fmt.Printf("Steps:       %d\n", len(rec.DeltaTicks))
	fmt.Printf("Events:      %d\n", len(rec.Events))
	if rec.Metadata.Description != "" {
		fmt.Printf("Description: %s\n", rec.Metadata.Description)
	}
	for k, v := range rec.Metadata.Extra {
		fmt.Printf("%s: %v\n", k, v)
	}

	if flagInspectEvents {
		fmt.Println()
		for i, ev := range rec.Events {
			switch ev.Type {
			case event.TypeUserInput:
				fmt.Printf("  %4d  tick %-8d  input   %s %v\n", i, ev.Tick, ev.InputType, ev.Params)
			default:
				fmt.Printf("  %4d  tick %-8d  object  %s/%s %s %v\n", i, ev.Tick, ev.ObjectType, ev.ObjectID, ev.Method, ev.Params)
			}
		}
	}
}
