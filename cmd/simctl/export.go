package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/storage"
)

var flagImportGame string

var exportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Export a recording to a file",
	Long: `Writes a stored recording to a JSON file. Paths ending in .zst are
zstd-compressed.

Examples:
  simctl export 4f6b2c… session.json
  simctl export 4f6b2c… session.json.zst`,
	Args: cobra.ExactArgs(2),
	Run:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a recording file into the store",
	Long: `Reads an exported recording file, validates it against the recording
schema, and stores it under a fresh ID.

Examples:
  simctl import session.json.zst
  simctl import session.json --game snake`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagImportGame, "game", "", "Simulation ID (needed when the file does not carry one)")
}

func runExport(_ *cobra.Command, args []string) {
	id, path := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		fatalf("Error opening store: %v", err)
	}
	defer store.Close()

	rec, err := store.LoadRecording(id)
	if err != nil {
		fatalf("Error: %v", err)
	}
	if err := storage.WriteFile(path, rec); err != nil {
		fatalf("Error: %v", err)
	}

	fmt.Printf("Exported %s to %s\n", id, path)
}

func runImport(_ *cobra.Command, args []string) {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v", err)
	}

	rec, err := storage.ReadFile(path)
	if err != nil {
		fatalf("Error: %v", err)
	}

	game := flagImportGame
	if game == "" {
		game, _ = rec.Metadata.Extra["game"].(string)
	}
	if game == "" {
		fatalf("Error: file does not name a simulation; pass --game")
	}

	store, err := openStore(cfg)
	if err != nil {
		fatalf("Error opening store: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRecording(game, rec)
	if err != nil {
		fatalf("Error: %v", err)
	}

	fmt.Printf("Imported %s as %s\n", path, id)
}
