package kart

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/session"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

var canvas = core.Extent{W: 640, H: 384}

func newWorld(t *testing.T, mode int, lvl steer.Level) *World {
	t.Helper()
	w := New()
	if err := w.Setup("", canvas); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	w.Start(w.Modes()[mode], lvl, rand.New(rand.NewSource(1)))
	return w
}

func idle() [core.MaxPlayers]core.ControlSignal {
	return [core.MaxPlayers]core.ControlSignal{}
}

func TestStartGrid(t *testing.T) {
	w := newWorld(t, 1, steer.Medium)
	tr := w.Track()

	for i, k := range w.Karts() {
		if k.Pos != tr.Starts[i] {
			t.Errorf("kart %d at %v, expected %v", i, k.Pos, tr.Starts[i])
		}
		if k.Angle != tr.Heading {
			t.Errorf("kart %d heading %v, expected %v", i, k.Angle, tr.Heading)
		}
		if k.Laps != 0 || k.Checkpoint {
			t.Errorf("kart %d starts with laps %d, checkpoint %v", i, k.Laps, k.Checkpoint)
		}
	}
	if w.Karts()[core.Player1].AI || !w.Karts()[core.Player2].AI {
		t.Error("Vs CPU should drive only the second kart")
	}
	if w.Karts()[0].ID == w.Karts()[1].ID {
		t.Error("karts share an ID")
	}
}

// cross puts the first kart just below the finish line moving up.
func cross(w *World) {
	k := w.Karts()[core.Player1]
	tr := w.Track()
	k.Pos = core.V((tr.Finish.A.X+tr.Finish.B.X)/2, tr.Finish.A.Y+2)
	k.Vel = core.V(0, -4)
	k.Angle = tr.Heading
}

func TestLapNeedsCheckpoint(t *testing.T) {
	w := newWorld(t, 0, steer.Medium)
	k := w.Karts()[core.Player1]

	cross(w)
	w.Update(idle(), 0)
	if k.Laps != 0 {
		t.Fatalf("Laps = %d after crossing without checkpoint, expected 0", k.Laps)
	}

	cross(w)
	k.Checkpoint = true
	w.Update(idle(), 0)
	if k.Laps != 1 {
		t.Errorf("Laps = %d after a full lap, expected 1", k.Laps)
	}
	if k.Checkpoint {
		t.Error("checkpoint should clear after a lap")
	}
}

func TestFinalLapEndsRace(t *testing.T) {
	w := newWorld(t, 0, steer.Medium)
	k := w.Karts()[core.Player1]
	k.Laps = w.cfg.Laps - 1

	cross(w)
	k.Checkpoint = true
	res := w.Update(idle(), 0)
	if res.Outcome != session.MatchOver {
		t.Fatalf("Outcome = %v, expected MatchOver", res.Outcome)
	}
	st := w.Status()
	if st.Winner != core.Player1 || st.Verdict != "P1 wins!" {
		t.Errorf("Status() = %+v, expected P1 to win", st)
	}
	if st.Scores[core.Player1] != w.cfg.Laps {
		t.Errorf("Scores = %v, expected %d laps for P1", st.Scores, w.cfg.Laps)
	}
}

func TestWallsContainKarts(t *testing.T) {
	w := newWorld(t, 0, steer.Medium)
	ctl := idle()
	ctl[core.Player1] = core.ControlSignal{Turn: 1, Accelerate: 1}
	ctl[core.Player2] = core.ControlSignal{Turn: -1, Accelerate: 1}

	lo := core.V(0.1*canvas.W, 0.1*canvas.H)
	hi := core.V(0.9*canvas.W, 0.9*canvas.H)
	for i := 0; i < 1200; i++ {
		w.Update(ctl, 0)
		for _, k := range w.Karts() {
			if k.Pos.X < lo.X || k.Pos.X > hi.X || k.Pos.Y < lo.Y || k.Pos.Y > hi.Y {
				t.Fatalf("tick %d: kart %d escaped to %v", i, k.Player, k.Pos)
			}
		}
	}
}

func TestReverseIsCapped(t *testing.T) {
	w := newWorld(t, 0, steer.Medium)
	ctl := idle()
	ctl[core.Player1] = core.ControlSignal{Accelerate: -1}

	k := w.Karts()[core.Player1]
	for i := 0; i < 30; i++ {
		w.Update(ctl, 0)
		if k.Speed < -w.cfg.Motion.MaxX/2-1e-9 {
			t.Fatalf("tick %d: Speed = %v, expected >= %v", i, k.Speed, -w.cfg.Motion.MaxX/2)
		}
	}
	if k.Speed >= 0 {
		t.Errorf("Speed = %v after reversing, expected negative", k.Speed)
	}
}

func TestCPUWinsUnopposed(t *testing.T) {
	for _, lvl := range steer.Levels {
		t.Run(string(lvl), func(t *testing.T) {
			w := newWorld(t, 1, lvl)
			for i := 0; i < 2000; i++ {
				if w.Update(idle(), 0).Outcome == session.MatchOver {
					st := w.Status()
					if st.Winner != core.Player2 || st.Verdict != "CPU wins!" {
						t.Errorf("Status() = %+v, expected the CPU to win", st)
					}
					return
				}
			}
			t.Errorf("CPU finished %d laps in 2000 ticks", w.Karts()[core.Player2].Laps)
		})
	}
}

func TestHardLapsFaster(t *testing.T) {
	ticks := func(lvl steer.Level) int {
		w := newWorld(t, 1, lvl)
		for i := 1; i <= 2000; i++ {
			w.Update(idle(), 0)
			if w.Karts()[core.Player2].Laps > 0 {
				return i
			}
		}
		return 2000
	}
	easy, hard := ticks(steer.Easy), ticks(steer.Hard)
	if hard >= easy {
		t.Errorf("hard lap took %d ticks, easy %d; expected hard to be faster", hard, easy)
	}
}

func TestResizeRebuildsOnlyOnChange(t *testing.T) {
	w := newWorld(t, 0, steer.Medium)
	w.Karts()[core.Player1].Laps = 2

	w.Resize(canvas)
	if w.Builds() != 1 {
		t.Errorf("Builds() = %d after same-size resize, expected 1", w.Builds())
	}

	bigger := core.Extent{W: 800, H: 600}
	w.Resize(bigger)
	if w.Builds() != 2 {
		t.Errorf("Builds() = %d after resize, expected 2", w.Builds())
	}
	if w.Track().Extent != bigger {
		t.Errorf("track extent %+v, expected %+v", w.Track().Extent, bigger)
	}
	k := w.Karts()[core.Player1]
	if k.Pos != w.Track().Starts[core.Player1] {
		t.Errorf("kart at %v after resize, expected new start %v", k.Pos, w.Track().Starts[core.Player1])
	}
	if k.Laps != 2 {
		t.Errorf("Laps = %d after resize, expected 2", k.Laps)
	}
}

func TestDrawIncludesTrack(t *testing.T) {
	w := newWorld(t, 0, steer.Medium)
	var s core.Snapshot
	w.Draw(&s)

	if len(s.Lines) != len(w.Track().Walls)+1 {
		t.Errorf("Lines = %d, expected walls plus finish", len(s.Lines))
	}
	if len(s.Bodies) != 2 {
		t.Errorf("Bodies = %d, expected 2 karts", len(s.Bodies))
	}
	if len(s.HUD) != 1 {
		t.Errorf("HUD = %v, expected a lap line", s.HUD)
	}
}

func TestPilotFailureIsLogged(t *testing.T) {
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer g.Close()
	var buf bytes.Buffer
	g.(registry.Logged).SetLogger(log.New(&buf))

	w := g.(*session.Session).World().(*World)
	if err := w.Setup("", canvas); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	w.cfg.AI.Tiers = map[string]steer.Tier{}
	w.Start(w.Modes()[1], steer.Hard, rand.New(rand.NewSource(1)))

	if w.pilot != nil {
		t.Error("pilot built without a tier")
	}
	if !strings.Contains(buf.String(), "cpu pilot unavailable") {
		t.Errorf("log = %q, expected the pilot failure", buf.String())
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("%q not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer g.Close()
	if err := g.Reset(core.DefaultConfig()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if g.Title() != "Kart Havoc" {
		t.Errorf("Title() = %q", g.Title())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionOption2)
	g.Step(0, in)
	if g.State().Phase != "difficultySelect" {
		t.Errorf("Phase = %q, expected difficultySelect for Vs CPU", g.State().Phase)
	}
}
