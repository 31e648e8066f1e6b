package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/couch-arcade/internal/logging"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows a list of all games registered in the arcade, with the best
solo score and the number of versus matches played on this machine.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	logger, err := logging.New(os.Stderr, "arcade", flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var stats map[string]*storage.GameStats
	if store := openStore(log.New(io.Discard)); store != nil {
		if stats, err = store.GetAllGamesStats(); err != nil {
			logger.Debug("stats unavailable", "db", flagDBPath, "error", err)
		}
		store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID" and "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %6s  %7s\n", maxIDLen, "ID", maxTitleLen, "Title", "Best", "Matches")
	fmt.Printf("  %-*s  %-*s  %6s  %7s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "-------")

	for _, g := range games {
		best, matches := "-", "-"
		if s, ok := stats[g.ID]; ok {
			if s.GamesCount > 0 {
				best = fmt.Sprint(s.HighScore)
			}
			if s.Matches > 0 {
				matches = fmt.Sprint(s.Matches)
			}
		}
		fmt.Printf("  %-*s  %-*s  %6s  %7s\n", maxIDLen, g.ID, maxTitleLen, g.Title, best, matches)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' or 'arcade window <id>' to play a game.")
}
