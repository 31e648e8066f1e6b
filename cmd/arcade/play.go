package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/couch-arcade/internal/platform/tui"
	"github.com/vovakirdan/couch-arcade/internal/registry"
)

var (
	flagPlayDifficulty string
	flagPlayTouch      string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game in the terminal",
	Long: `Start playing the specified game in the terminal.

Controls:
  W/A/S/D + Space/F   - Player 1
  Arrows + Enter or / - Player 2
  1/2/3, Enter        - Pick a mode or difficulty
  P                   - Pause
  R                   - Restart (after game over)
  B/Esc               - Back to the mode menu, or leave from it
  Q/Ctrl+C            - Quit

Terminals report no key releases, so a key counts as held until it stops
repeating. The mouse acts as a touch when --touch is joystick or zones.

Examples:
  arcade play kart
  arcade play kart --difficulty hard
  arcade play astro --touch zones
  arcade play soccer --config ./my-soccer.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addSessionFlags(playCmd, &flagPlayDifficulty, &flagPlayTouch)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg, err := runtimeConfig(flagPlayDifficulty, flagPlayTouch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.KeyHold = tui.DefaultKeyHold

	logger, closer := openLogger("arcade")
	defer closer.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game failed", "game", gameID, "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closer.Close()
		os.Exit(1)
	}
}
