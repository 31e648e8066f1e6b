package control

import (
	"time"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

// Bindings maps key names to the controls of one actor.
// Key names follow the host spelling: "a", "up", "space", "enter".
type Bindings struct {
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
	Up    []string `yaml:"up"`
	Down  []string `yaml:"down"`
	Jump  []string `yaml:"jump"`
	Fire  []string `yaml:"fire"`
}

// WASD returns the left-hand key set.
func WASD() Bindings {
	return Bindings{
		Left:  []string{"a"},
		Right: []string{"d"},
		Up:    []string{"w"},
		Down:  []string{"s"},
		Jump:  []string{"w"},
		Fire:  []string{"space", "f"},
	}
}

// Arrows returns the right-hand key set.
func Arrows() Bindings {
	return Bindings{
		Left:  []string{"left"},
		Right: []string{"right"},
		Up:    []string{"up"},
		Down:  []string{"down"},
		Jump:  []string{"up"},
		Fire:  []string{"enter", "/"},
	}
}

// Solo merges both key sets for a single actor.
func Solo() Bindings {
	w, a := WASD(), Arrows()
	return Bindings{
		Left:  append(w.Left, a.Left...),
		Right: append(w.Right, a.Right...),
		Up:    append(w.Up, a.Up...),
		Down:  append(w.Down, a.Down...),
		Jump:  append(append(w.Jump, a.Jump...), "space"),
		Fire:  append(w.Fire, a.Fire...),
	}
}

// Options configures a Controller. The touch mode is fixed for its lifetime.
type Options struct {
	Players        int
	Bindings       [core.MaxPlayers]Bindings
	Touch          core.TouchMode
	Hold           time.Duration // terminal auto-release window, 0 for hosts with key-up
	FireCooldown   time.Duration
	JumpCooldown   time.Duration
	JoystickRadius float64
	FireFraction   float64
	DragRadius     float64
	TapSlop        float64 // max travel for a touch to count as a tap
}

// DefaultOptions returns options for n actors with keyboard input.
func DefaultOptions(n int) Options {
	o := Options{
		Players:        n,
		FireCooldown:   250 * time.Millisecond,
		JumpCooldown:   150 * time.Millisecond,
		JoystickRadius: 50,
		FireFraction:   0.2,
		DragRadius:     60,
		TapSlop:        12,
	}
	if n <= 1 {
		o.Players = 1
		o.Bindings[core.Player1] = Solo()
	} else {
		o.Players = 2
		o.Bindings[core.Player1] = WASD()
		o.Bindings[core.Player2] = Arrows()
	}
	return o
}

type touch struct {
	owner core.PlayerID
	start core.Vec2
	last  core.Vec2
	stick bool
}

// Controller owns the live input state of one session.
type Controller struct {
	opts    Options
	extent  core.Extent
	now     time.Duration
	keys    *KeyState
	sticks  [core.MaxPlayers]Joystick
	zones   [core.MaxPlayers]Zones
	fire    [core.MaxPlayers]Debouncer
	jump    [core.MaxPlayers]Debouncer
	touches map[int]*touch
	// actions holds non-stick touches in joystick mode, per owner.
	actions [core.MaxPlayers]map[int]bool
	taps    [core.MaxPlayers][]core.Vec2
}

// New creates a controller for the given canvas.
func New(opts Options, extent core.Extent) *Controller {
	if opts.Players < 1 {
		opts.Players = 1
	}
	if opts.Players > core.MaxPlayers {
		opts.Players = core.MaxPlayers
	}
	c := &Controller{
		opts:    opts,
		keys:    NewKeyState(opts.Hold),
		touches: make(map[int]*touch),
	}
	for i := range c.sticks {
		c.sticks[i].Radius = opts.JoystickRadius
		c.zones[i].FireFraction = opts.FireFraction
		c.zones[i].DragRadius = opts.DragRadius
		c.fire[i].Cooldown = opts.FireCooldown
		c.jump[i].Cooldown = opts.JumpCooldown
		c.actions[i] = make(map[int]bool)
	}
	c.Resize(extent)
	return c
}

// Mode returns the touch mapping chosen at construction.
func (c *Controller) Mode() core.TouchMode {
	return c.opts.Touch
}

// Players returns the number of mapped actors.
func (c *Controller) Players() int {
	return c.opts.Players
}

// Resize repartitions the canvas between actors.
func (c *Controller) Resize(extent core.Extent) {
	c.extent = extent
	for i := 0; i < c.opts.Players; i++ {
		c.zones[i].Region = c.region(core.PlayerID(i))
	}
}

func (c *Controller) region(p core.PlayerID) Region {
	if c.opts.Players == 1 {
		return Region{Max: core.V(c.extent.W, c.extent.H)}
	}
	half := c.extent.W / 2
	if p == core.Player1 {
		return Region{Max: core.V(half, c.extent.H)}
	}
	return Region{Min: core.V(half, 0), Max: core.V(c.extent.W, c.extent.H)}
}

func (c *Controller) ownerAt(p core.Vec2) core.PlayerID {
	if c.opts.Players == 2 && p.X >= c.extent.W/2 {
		return core.Player2
	}
	return core.Player1
}

// Handle records a raw event. It never touches bodies or match state.
func (c *Controller) Handle(ev core.InputEvent) {
	switch ev.Kind {
	case core.KeyDown:
		if c.opts.Touch == core.TouchOff {
			c.keys.Press(ev.Key, c.now)
		}
	case core.KeyUp:
		c.keys.Release(ev.Key)
	case core.TouchStart:
		c.touchStart(ev.TouchID, ev.Pos)
	case core.TouchMove:
		c.touchMove(ev.TouchID, ev.Pos)
	case core.TouchEnd:
		c.touchEnd(ev.TouchID, ev.Pos)
	}
}

func (c *Controller) touchStart(id int, p core.Vec2) {
	owner := c.ownerAt(p)
	t := &touch{owner: owner, start: p, last: p}
	c.touches[id] = t

	switch c.opts.Touch {
	case core.TouchJoystick:
		if c.sticks[owner].Begin(id, p) {
			t.stick = true
		} else {
			c.actions[owner][id] = true
		}
	case core.TouchZones:
		c.zones[owner].Begin(id, p)
	}
}

func (c *Controller) touchMove(id int, p core.Vec2) {
	t, ok := c.touches[id]
	if !ok {
		return
	}
	t.last = p
	switch c.opts.Touch {
	case core.TouchJoystick:
		c.sticks[t.owner].Move(id, p)
	case core.TouchZones:
		c.zones[t.owner].Move(id, p)
	}
}

func (c *Controller) touchEnd(id int, p core.Vec2) {
	t, ok := c.touches[id]
	if !ok {
		return
	}
	delete(c.touches, id)
	t.last = p

	switch c.opts.Touch {
	case core.TouchJoystick:
		c.sticks[t.owner].End(id)
		delete(c.actions[t.owner], id)
	case core.TouchZones:
		c.zones[t.owner].End(id)
	}
	if t.last.Dist(t.start) <= c.opts.TapSlop {
		c.taps[t.owner] = append(c.taps[t.owner], p)
	}
}

// Sample advances the controller clock by dt and returns one control signal
// per actor. Unused actor slots are zero.
func (c *Controller) Sample(dt time.Duration) [core.MaxPlayers]core.ControlSignal {
	c.now += dt
	c.keys.Expire(c.now)

	var out [core.MaxPlayers]core.ControlSignal
	for i := 0; i < c.opts.Players; i++ {
		p := core.PlayerID(i)
		sig, fire, jump := c.raw(p)

		c.fire[i].Advance(dt)
		c.jump[i].Advance(dt)
		sig.Fire = c.fire[i].Trigger(fire)
		sig.Jump = c.jump[i].Trigger(jump)

		if n := len(c.taps[i]); n > 0 {
			sig.Tap = c.taps[i][n-1]
			sig.Tapped = true
			c.taps[i] = c.taps[i][:0]
		}
		out[i] = sig
	}
	return out
}

func (c *Controller) raw(p core.PlayerID) (sig core.ControlSignal, fire, jump bool) {
	switch c.opts.Touch {
	case core.TouchJoystick:
		v := c.sticks[p].Vector()
		sig.Turn = core.ClampF(v.X, -1, 1)
		sig.Accelerate = core.ClampF(-v.Y, -1, 1)
		action := len(c.actions[p]) > 0
		return sig, action, action || sig.Accelerate > 0.6
	case core.TouchZones:
		d := c.zones[p].Drag()
		sig.Turn = d.X
		sig.Accelerate = -d.Y
		f := c.zones[p].Firing()
		return sig, f, f
	}

	b := c.opts.Bindings[p]
	if c.keys.Any(b.Left) {
		sig.Turn--
	}
	if c.keys.Any(b.Right) {
		sig.Turn++
	}
	if c.keys.Any(b.Up) {
		sig.Accelerate++
	}
	if c.keys.Any(b.Down) {
		sig.Accelerate--
	}
	return sig, c.keys.Any(b.Fire), c.keys.Any(b.Jump)
}

// Stick exposes an actor's joystick for overlay drawing.
func (c *Controller) Stick(p core.PlayerID) *Joystick {
	return &c.sticks[p]
}

// Reset clears all live input and cooldowns.
func (c *Controller) Reset() {
	c.keys.Clear()
	for id := range c.touches {
		delete(c.touches, id)
	}
	for i := range c.sticks {
		c.sticks[i].Reset()
		c.zones[i].Reset()
		c.fire[i].Reset()
		c.jump[i].Reset()
		for id := range c.actions[i] {
			delete(c.actions[i], id)
		}
		c.taps[i] = c.taps[i][:0]
	}
}
