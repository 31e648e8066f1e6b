package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresMatch string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and versus results",
	Long: `Print a title's best solo scores and latest versus results. Without a
title, print the latest versus results across the arcade.

Examples:
  arcade scores goldgrab
  arcade scores --limit 20
  arcade scores --match 0b5f...   # one result by its match ID
  arcade scores kart --clear      # forget kart's history`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	f := scoresCmd.Flags()
	f.IntVar(&flagScoresLimit, "limit", 10, "rows per table")
	f.BoolVar(&flagScoresClear, "clear", false, "delete the title's scores and results")
	f.StringVar(&flagScoresMatch, "match", "", "show one versus result by match ID")
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}

func runScores(_ *cobra.Command, args []string) {
	store := openStore(log.New(io.Discard))
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresMatch != "" {
		m, err := store.MatchByID(flagScoresMatch)
		switch {
		case err != nil:
			fail("%v", err)
		case m == nil:
			fail("no match %q", flagScoresMatch)
		}
		fmt.Println(headerStyle.Render("Match " + m.MatchID))
		fmt.Println(matchTable([]storage.MatchResult{*m}))
		return
	}

	if len(args) == 0 {
		fmt.Println(headerStyle.Render("Latest versus results"))
		printMatches(store, "")
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fail("unknown game %q (see 'arcade list')", gameID)
	}
	title := registry.TitleOf(gameID)

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(headerStyle.Render(title + " - best runs"))
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
	} else {
		t := table.New().Border(lipgloss.NormalBorder()).Headers("#", "Score", "Played")
		for i, e := range scores {
			t.Row(strconv.Itoa(i+1), strconv.Itoa(e.Score), e.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println(t)
	}

	fmt.Println()
	fmt.Println(headerStyle.Render(title + " - versus"))
	printMatches(store, gameID)
}

func printMatches(store *storage.Store, gameID string) {
	matches, err := store.RecentMatches(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		fmt.Println("No versus matches recorded yet.")
		return
	}
	fmt.Println(matchTable(matches))
}

func matchTable(matches []storage.MatchResult) *table.Table {
	t := table.New().Border(lipgloss.NormalBorder()).
		Headers("Game", "Mode", "Result", "Score", "Length", "Played", "Match")
	for _, m := range matches {
		result := m.Winner
		if result == "" {
			result = "draw"
		}
		t.Row(
			m.GameID,
			m.Mode,
			result,
			fmt.Sprintf("%d-%d", m.Score1, m.Score2),
			fmt.Sprintf("%.0fs", m.Duration.Seconds()),
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.MatchID[:min(8, len(m.MatchID))],
		)
	}
	return t
}
