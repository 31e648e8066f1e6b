package goldgrab

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/physics"
	"github.com/vovakirdan/couch-arcade/internal/session"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

var canvas = core.Extent{W: 640, H: 384}

func newWorld(t *testing.T, seed int64) *World {
	t.Helper()
	w := New()
	if err := w.Setup("", canvas); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	w.Start(w.Modes()[0], steer.Medium, rand.New(rand.NewSource(seed)))
	return w
}

func idle() [core.MaxPlayers]core.ControlSignal {
	return [core.MaxPlayers]core.ControlSignal{}
}

func surface(w *World) float64 {
	return w.extent.H - w.cfg.Start.Lift
}

func TestRunnerStartsOnPlatform(t *testing.T) {
	w := newWorld(t, 1)
	p := w.Player()
	for i := 0; i < 10; i++ {
		w.Update(idle(), 0)
	}
	if !p.OnGround {
		t.Fatal("runner not grounded on the start platform")
	}
	if p.Bottom() != surface(w) {
		t.Errorf("runner bottom = %v, expected %v", p.Bottom(), surface(w))
	}
	if p.Pos.X != w.Camera().Offset.X+w.cfg.Player.X {
		t.Errorf("runner x = %v, expected pinned to camera + %v", p.Pos.X, w.cfg.Player.X)
	}
}

func TestJump(t *testing.T) {
	w := newWorld(t, 1)
	p := w.Player()

	ctl := idle()
	ctl[core.Player1].Jump = true
	w.Update(ctl, 0)
	if p.Vel.Y >= 0 || p.OnGround {
		t.Fatalf("Vel.Y = %v, OnGround = %v after jumping", p.Vel.Y, p.OnGround)
	}

	vy := p.Vel.Y
	w.Update(ctl, 0)
	if p.Vel.Y < vy {
		t.Errorf("jumped again in mid-air: Vel.Y %v -> %v", vy, p.Vel.Y)
	}
}

func TestFallingEndsRun(t *testing.T) {
	w := newWorld(t, 1)
	p := w.Player()
	p.Pos.Y = canvas.H + w.cfg.FallMargin + 1
	p.OnGround = false

	if res := w.Update(idle(), 0); res.Outcome != session.MatchOver {
		t.Fatalf("Update() = %+v, expected MatchOver", res)
	}
	if w.Status().Verdict == "" {
		t.Error("verdict missing after the run ended")
	}
}

func add(w *World, kind physics.Kind, shape physics.Shape, pos core.Vec2) *physics.Body {
	b := &physics.Body{ID: 999, Kind: kind, Shape: shape, Pos: pos, Prev: pos}
	w.bodies = append(w.bodies, b)
	return b
}

func TestCoinPickup(t *testing.T) {
	w := newWorld(t, 1)
	p := w.Player()
	coin := add(w, physics.KindCoin, physics.Circle{Radius: 15}, p.Pos.Add(core.V(4, 0)))

	w.Update(idle(), 0)
	if p.Score != w.cfg.CoinScore {
		t.Errorf("Score = %d, expected %d", p.Score, w.cfg.CoinScore)
	}
	if !coin.Dead {
		t.Error("coin not collected")
	}
	for _, b := range w.Bodies() {
		if b == coin {
			t.Error("collected coin still in the level")
		}
	}
}

func TestStomp(t *testing.T) {
	w := newWorld(t, 1)
	p := w.Player()
	p.Pos.Y = 100
	p.Vel.Y = 5
	p.OnGround = false
	half := w.cfg.Player.H / 2
	enemy := add(w, physics.KindEnemy, physics.Rect{W: 40, H: 40}, core.V(p.Pos.X+3, 100+half+3+20))

	if res := w.Update(idle(), 0); res.Outcome != session.Continue {
		t.Fatalf("Update() = %+v, expected the stomp to keep the run going", res)
	}
	if !enemy.Dead || p.Score != w.cfg.StompScore {
		t.Errorf("enemy dead = %v, Score = %d; expected a stomp", enemy.Dead, p.Score)
	}
	if p.Vel.Y != w.cfg.StompBounce {
		t.Errorf("Vel.Y = %v, expected stomp bounce %v", p.Vel.Y, w.cfg.StompBounce)
	}
}

func TestSideHitEndsRun(t *testing.T) {
	w := newWorld(t, 1)
	p := w.Player()
	add(w, physics.KindEnemy, physics.Rect{W: 40, H: 40}, p.Pos.Add(core.V(20, 0)))

	if res := w.Update(idle(), 0); res.Outcome != session.MatchOver {
		t.Errorf("Update() = %+v, expected MatchOver", res)
	}
}

func snapshotBodies(w *World) []core.Vec2 {
	out := make([]core.Vec2, len(w.Bodies()))
	for i, b := range w.Bodies() {
		out[i] = b.Pos
	}
	return out
}

func TestStartDeterministic(t *testing.T) {
	a, b, c := newWorld(t, 42), newWorld(t, 42), newWorld(t, 43)
	pa, pb, pc := snapshotBodies(a), snapshotBodies(b), snapshotBodies(c)

	if len(pa) != len(pb) {
		t.Fatalf("same seed produced %d and %d bodies", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("body %d at %v and %v with the same seed", i, pa[i], pb[i])
		}
	}

	same := len(pa) == len(pc)
	for i := 0; same && i < len(pa); i++ {
		same = pa[i] == pc[i]
	}
	if same {
		t.Error("different seeds produced the same level")
	}

	a.Start(a.Modes()[0], steer.Medium, rand.New(rand.NewSource(42)))
	pr := snapshotBodies(a)
	if len(pr) != len(pb) || pr[len(pr)-1] != pb[len(pb)-1] {
		t.Error("restart with the same seed produced a different level")
	}
}

func TestLevelStaysAheadAndPrunes(t *testing.T) {
	w := newWorld(t, 7)
	w.cfg.FallMargin = math.Inf(1)
	cam := w.Camera()
	gc := w.cfg.Generator

	last := cam.Progress()
	for i := 0; i < 1200; i++ {
		if w.Update(idle(), 0).Outcome != session.Continue {
			break
		}
		if cam.Progress() <= last {
			t.Fatalf("tick %d: camera stalled at %v", i, cam.Progress())
		}
		last = cam.Progress()
		if ahead := w.gen.Frontier() - cam.Leading(); ahead < gc.Lookahead {
			t.Fatalf("tick %d: frontier only %v ahead", i, ahead)
		}
		for _, b := range w.Bodies() {
			if b.Right() < cam.Trailing()-gc.PruneMargin {
				t.Fatalf("tick %d: body %d left behind at %v", i, b.ID, b.Pos)
			}
		}
	}
	if got := w.gen.Speed(); got <= gc.BaseSpeed {
		t.Errorf("Speed() = %v, expected a ramp above %v", got, gc.BaseSpeed)
	}
}

func TestDrawFollowsCamera(t *testing.T) {
	w := newWorld(t, 1)
	for i := 0; i < 30; i++ {
		w.Update(idle(), 0)
	}
	var s core.Snapshot
	w.Draw(&s)
	if s.Camera != w.Camera().Offset {
		t.Errorf("snapshot camera %v, expected %v", s.Camera, w.Camera().Offset)
	}
	if len(s.Bodies) != len(w.Bodies())+1 {
		t.Errorf("Bodies = %d, expected level plus runner", len(s.Bodies))
	}
}
