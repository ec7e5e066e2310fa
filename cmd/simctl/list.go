package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/registry"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List registered simulations",
	Long:  `Shows all simulations registered with the engine.`,
	Run:   runGames,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored recordings",
	Long:  `Shows all recordings in the database, newest first.`,
	Run:   runList,
}

func runGames(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No simulations registered.")
		return
	}

	fmt.Println("Registered simulations:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'simctl record <id>' to record a session.")
}

func runList(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		fatalf("Error opening store: %v", err)
	}
	defer store.Close()

	entries, err := store.ListRecordings()
	if err != nil {
		fatalf("Error listing recordings: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No recordings stored.")
		return
	}

	fmt.Printf("  %-36s  %-10s  %-10s  %-7s  %-19s  %s\n",
		"ID", "Game", "Ticks", "Events", "Created", "Description")
	for _, e := range entries {
		fmt.Printf("  %-36s  %-10s  %-10d  %-7d  %-19s  %s\n",
			e.ID, e.Game, e.TotalTicks, e.EventCount,
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Description)
	}
}
