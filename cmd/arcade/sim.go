package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/couch-arcade/internal/clock"
	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/logging"
	"github.com/vovakirdan/couch-arcade/internal/registry"
)

var (
	flagSimMode       int
	flagSimDifficulty string
	flagSimDuration   time.Duration
	flagSimRealtime   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless and print the result",
	Long: `Run the specified game without a screen or players: the mode is
picked, the countdown runs and the match plays on with idle controls until
it ends or the duration runs out. Versus CPU modes let the AI pilot race.

By default the simulation runs as fast as possible on nominal ticks, so a
fixed --seed always gives the same result. --realtime ticks on the wall
clock instead.

Examples:
  arcade sim kart --mode 2 --difficulty hard --seed 7
  arcade sim goldgrab --duration 30s
  arcade sim astro --realtime --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMode, "mode", 1, "Mode to pick from the game's menu (1-3)")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "medium", "AI tier for modes that ask: easy, medium, hard")
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", time.Minute, "Simulated time limit")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Tick on the wall clock")
}

var modeActions = []core.Action{core.ActionOption1, core.ActionOption2, core.ActionOption3}

func runSim(cmd *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}
	if flagSimMode < 1 || flagSimMode > len(modeActions) {
		fmt.Fprintf(os.Stderr, "Error: --mode must be 1 to %d\n", len(modeActions))
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, "arcade-sim", flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagSimDifficulty

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	if l, ok := game.(registry.Logged); ok {
		l.SetLogger(logger)
	}
	if err := game.Reset(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer game.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), flagSimDuration)
	defer cancel()

	frame := core.NewInputFrame()
	var res core.StepResult
	update := func(dt time.Duration) {
		switch game.State().Phase {
		case "menu":
			frame.Set(modeActions[flagSimMode-1])
		case "difficultySelect":
			frame.Set(core.ActionConfirm)
		}
		res = game.Step(dt, frame)
		frame.Clear()
		if res.Ended {
			cancel()
		}
	}
	phase := ""
	render := func() {
		if p := game.State().Phase; p != phase {
			logger.Debug("phase", "from", phase, "to", p)
			phase = p
		}
	}

	c := clock.New(update, render, logger)
	interval := time.Second / time.Duration(cfg.TickRate)
	if flagSimRealtime {
		if err := c.Run(ctx, interval); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		now := time.Unix(0, 0)
		for limit := int(flagSimDuration / interval); ctx.Err() == nil && int(c.Ticks()) <= limit; {
			c.Tick(now)
			now = now.Add(interval)
		}
	}

	st := game.State()
	fmt.Printf("%s (%s)  seed %d\n", registry.TitleOf(gameID), gameID, cfg.Seed)
	fmt.Printf("  phase    %s after %d ticks\n", st.Phase, c.Ticks())
	if st.Versus {
		fmt.Printf("  score    %d - %d\n", st.Scores[core.Player1], st.Scores[core.Player2])
		if st.GameOver {
			fmt.Printf("  winner   %s\n", st.Winner)
		}
	} else {
		fmt.Printf("  score    %d\n", st.Score)
	}
	if n := c.Recovered(); n > 0 {
		fmt.Printf("  recovered from %d panicking ticks\n", n)
	}
}
