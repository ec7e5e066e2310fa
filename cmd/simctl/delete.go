package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored recording",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

func runDelete(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		fatalf("Error opening store: %v", err)
	}
	defer store.Close()

	if err := store.DeleteRecording(args[0]); err != nil {
		fatalf("Error: %v", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
}
