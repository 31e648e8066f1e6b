package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/couch-arcade/internal/logging"
	"github.com/vovakirdan/couch-arcade/internal/platform/gui"
	"github.com/vovakirdan/couch-arcade/internal/registry"
)

var (
	flagWindowDifficulty string
	flagWindowTouch      string
	flagWindowWidth      int
	flagWindowHeight     int
)

var windowCmd = &cobra.Command{
	Use:   "window <game>",
	Short: "Play a game in a window",
	Long: `Start playing the specified game in a desktop window.

The window reports real key releases and multi-touch, and the left mouse
button acts as a touch. Controls match 'arcade play'.

Examples:
  arcade window kart
  arcade window bounce --width 800 --height 600
  arcade window soccer --touch joystick`,
	Args: cobra.ExactArgs(1),
	Run:  runWindow,
}

func init() {
	addSessionFlags(windowCmd, &flagWindowDifficulty, &flagWindowTouch)
	windowCmd.Flags().IntVar(&flagWindowWidth, "width", 640, "Window width in pixels")
	windowCmd.Flags().IntVar(&flagWindowHeight, "height", 384, "Window height in pixels")
}

func runWindow(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg, err := runtimeConfig(flagWindowDifficulty, flagWindowTouch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.ScreenW, cfg.ScreenH = flagWindowWidth, flagWindowHeight

	// The terminal is free while the window is open, so logs go to stderr
	// unless a file is named.
	logger, closer := openLogger("arcade-gui")
	defer closer.Close()
	if flagLogFile == "" {
		if logger, err = logging.New(os.Stderr, "arcade-gui", flagLogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	runErr := gui.Run(game, store, cfg, logger)
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
