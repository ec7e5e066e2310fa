package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/replay"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

var flagVerifyGame string

var verifyCmd = &cobra.Command{
	Use:   "verify <id|file>",
	Short: "Replay a recording twice and compare the outcomes",
	Long: `Replays a recording on two independent engines and compares their
final snapshots and tick counts. Identical outcomes demonstrate the
recording is deterministic end to end.

Examples:
  simctl verify 4f6b2c…
  simctl verify session.json.zst --game snake`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&flagVerifyGame, "game", "", "Simulation ID (needed when the recording does not carry one)")
}

type replayResult struct {
	snapshot string
	ticks    core.Ticks
	state    sim.State
}

func replayOnce(cfg config.Config, gameID string, rec *replay.Recording) (replayResult, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return replayResult{}, err
	}
	driver := replay.NewDriver(sim.New(engineConfig(cfg), game, nil), core.Ticks(cfg.Replay.MaxStepTicks))
	if err := driver.Run(rec); err != nil {
		return replayResult{}, err
	}
	return replayResult{
		snapshot: game.Snapshot(),
		ticks:    driver.Engine().TotalTicks(),
		state:    driver.Engine().State(),
	}, nil
}

func runVerify(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v", err)
	}

	rec, game, err := resolveRecording(cfg, args[0])
	if err != nil {
		fatalf("Error: %v", err)
	}
	if flagVerifyGame != "" {
		game = flagVerifyGame
	}
	if game == "" {
		fatalf("Error: recording does not name a simulation; pass --game")
	}

	first, err := replayOnce(cfg, game, rec)
	if err != nil {
		fatalf("Error replaying: %v", err)
	}
	second, err := replayOnce(cfg, game, rec)
	if err != nil {
		fatalf("Error replaying: %v", err)
	}

	if first != second {
		fmt.Println("MISMATCH: replays diverged")
		fmt.Printf("  first:  %s (ticks=%d state=%v)\n", first.snapshot, first.ticks, first.state)
		fmt.Printf("  second: %s (ticks=%d state=%v)\n", second.snapshot, second.ticks, second.state)
		os.Exit(1)
	}
	if first.ticks != rec.TotalTicks {
		fmt.Printf("MISMATCH: replay ran %d ticks, recording says %d\n", first.ticks, rec.TotalTicks)
		os.Exit(1)
	}

	fmt.Printf("OK: %d ticks, %d events, final %s\n", first.ticks, len(rec.Events), first.snapshot)
}
