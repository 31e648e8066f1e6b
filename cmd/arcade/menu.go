package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/couch-arcade/internal/platform/tui"
)

var (
	flagMenuDifficulty string
	flagMenuTouch      string
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick titles from the arcade menu",
	Long: `Open the arcade menu in this terminal. The menu shows each title's best
solo score and versus count. Enter starts a title, B or Esc at the title's
own menu comes back, Tab shows the scoreboard and Q quits.

Examples:
  arcade menu
  arcade menu --difficulty hard --fps 30
  arcade menu --db ./scores.db --log-file ./arcade.log`,
	Run: runMenu,
}

func init() {
	addSessionFlags(menuCmd, &flagMenuDifficulty, &flagMenuTouch)
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := runtimeConfig(flagMenuDifficulty, flagMenuTouch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.KeyHold = tui.DefaultKeyHold

	logger, closer := openLogger("arcade")
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
