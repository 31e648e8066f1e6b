// arcade is a couch arcade: five local two-player arcade titles that run in
// the terminal, in a window, or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game in the terminal
//	arcade window <game>     - Play a game in a window
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores and versus results
//	arcade sim <game>        - Run a game headless and print the result
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Game config YAML file or directory
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/logging"
	"github.com/vovakirdan/couch-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/couch-arcade/internal/games/astro"
	_ "github.com/vovakirdan/couch-arcade/internal/games/bounce"
	_ "github.com/vovakirdan/couch-arcade/internal/games/goldgrab"
	_ "github.com/vovakirdan/couch-arcade/internal/games/kart"
	_ "github.com/vovakirdan/couch-arcade/internal/games/soccer"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Couch Arcade - two-player arcade games for one screen",
	Long: `Couch Arcade is a set of local two-player arcade games that share one
keyboard or touch screen: a kart race, a soccer scramble, a gold-grab
runner, a slab-building climber and an asteroid shooter.

Available commands:
  list     - Show all available games
  play     - Play a specific game in the terminal
  window   - Play a specific game in a window
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and versus results
  sim      - Run a game headless

Examples:
  arcade list
  arcade play kart
  arcade window soccer --touch joystick
  arcade menu
  arcade serve --ssh :2222
  arcade scores kart`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Game config YAML file, or a directory of <game>.yaml files")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (terminal front-ends discard logs otherwise)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// addSessionFlags registers the flags shared by commands that start a
// session.
func addSessionFlags(cmd *cobra.Command, difficulty, touch *string) {
	cmd.Flags().StringVar(difficulty, "difficulty", "", "Pre-highlighted AI tier: easy, medium, hard")
	cmd.Flags().StringVar(touch, "touch", "auto", "Touch mapping: auto, off, joystick, zones")
}

// runtimeConfig builds the session config from the global flags. The
// terminal size is used when stdout is a terminal.
func runtimeConfig(difficulty, touch string) (core.RuntimeConfig, error) {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = difficulty

	mode, err := touchMode(touch)
	if err != nil {
		return cfg, err
	}
	cfg.Touch = mode
	return cfg, nil
}

// touchMode resolves the --touch flag. auto picks the joystick on mobile
// platforms and the keyboard everywhere else.
func touchMode(flag string) (core.TouchMode, error) {
	if flag == "auto" {
		switch runtime.GOOS {
		case "android", "ios":
			return core.TouchJoystick, nil
		}
		return core.TouchOff, nil
	}
	mode, ok := core.ParseTouchMode(flag)
	if !ok {
		return core.TouchOff, fmt.Errorf("unknown touch mode %q (use auto, off, joystick or zones)", flag)
	}
	return mode, nil
}

// openLogger builds the logger for a full-screen front-end.
func openLogger(prefix string) (*log.Logger, io.Closer) {
	logger, closer, err := logging.Open(flagLogFile, prefix, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closer
}

// openStore opens the scores database, or returns nil so games still run
// without a scoreboard.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
