package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/couch-arcade/internal/level"
	"github.com/vovakirdan/couch-arcade/internal/physics"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		into     any
		expected any
	}{
		{"kart", defaultKartYAML, &KartConfig{}, DefaultKartConfig()},
		{"soccer", defaultSoccerYAML, &SoccerConfig{}, DefaultSoccerConfig()},
		{"goldgrab", defaultGoldGrabYAML, &GoldGrabConfig{}, DefaultGoldGrabConfig()},
		{"bounce", defaultBounceYAML, &BounceConfig{}, DefaultBounceConfig()},
		{"astro", defaultAstroYAML, &AstroConfig{}, DefaultAstroConfig()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := yaml.Unmarshal(tc.data, tc.into); err != nil {
				t.Fatalf("embedded yaml does not parse: %v", err)
			}
			got := reflect.ValueOf(tc.into).Elem().Interface()
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("embedded %s = %+v\nexpected %+v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"kart", DefaultKartConfig().Validate()},
		{"soccer", DefaultSoccerConfig().Validate()},
		{"goldgrab", DefaultGoldGrabConfig().Validate()},
		{"bounce", DefaultBounceConfig().Validate()},
		{"astro", DefaultAstroConfig().Validate()},
	}

	for _, tc := range tests {
		if tc.err != nil {
			t.Errorf("%s defaults invalid: %v", tc.name, tc.err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	zeroFriction := DefaultKartConfig()
	zeroFriction.Motion.Friction = 0

	runaway := DefaultSoccerConfig()
	runaway.Ball.Motion.Friction = 1

	noLaps := DefaultKartConfig()
	noLaps.Laps = 0

	missingTier := DefaultKartConfig()
	missingTier.AI.Tiers = map[string]steer.Tier{"easy": {Speed: 1, TurnRate: 1, ArrivalPrecision: 1}}

	badGap := DefaultGoldGrabConfig()
	badGap.Generator.MinGap = badGap.Generator.MaxGap + 1

	fallingLava := DefaultBounceConfig()
	fallingLava.Lava.PerTick = -1

	noLives := DefaultAstroConfig()
	noLives.Lives = 0

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"zero friction", zeroFriction.Validate(), physics.ErrFriction},
		{"friction of one", runaway.Validate(), physics.ErrFriction},
		{"no laps", noLaps.Validate(), ErrInvalid},
		{"missing tier", missingTier.Validate(), ErrInvalid},
		{"gap bounds", badGap.Validate(), level.ErrGenerator},
		{"falling lava", fallingLava.Validate(), ErrInvalid},
		{"no lives", noLives.Validate(), ErrInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.expected) {
				t.Errorf("Validate() = %v, expected %v", tc.err, tc.expected)
			}
		})
	}
}

func TestLoadCustomPathOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soccer.yaml")
	data := []byte("win_score: 5\ngoal_pause: 3s\nball:\n  kick: 1.5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadSoccer(path)
	if err != nil {
		t.Fatalf("LoadSoccer() failed: %v", err)
	}
	if cfg.WinScore != 5 || cfg.GoalPause != 3*time.Second || cfg.Ball.Kick != 1.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Ball.Radius != 20 || cfg.Player.Motion.Friction != 0.9 {
		t.Errorf("defaults lost: ball radius %v, friction %v", cfg.Ball.Radius, cfg.Player.Motion.Friction)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadKart(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadKart() with a missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("laps: [oops"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadKart(path); err == nil {
		t.Error("LoadKart() with broken yaml should fail")
	}
}

func TestPathFor(t *testing.T) {
	dir := t.TempDir()
	kart := filepath.Join(dir, "kart.yaml")
	if err := os.WriteFile(kart, []byte("laps: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		id       string
		expected string
	}{
		{"empty", "", "kart", ""},
		{"dir with file", dir, "kart", kart},
		{"dir without file", dir, "soccer", ""},
		{"file", kart, "soccer", kart},
		{"missing file", filepath.Join(dir, "nope.yaml"), "kart", filepath.Join(dir, "nope.yaml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathFor(tt.path, tt.id); got != tt.expected {
				t.Errorf("PathFor(%q, %q) = %q, expected %q", tt.path, tt.id, got, tt.expected)
			}
		})
	}

	cfg, err := LoadKart(PathFor(dir, "kart"))
	if err != nil || cfg.Laps != 5 {
		t.Errorf("LoadKart() = %d laps, %v; expected 5 laps", cfg.Laps, err)
	}
}

func TestAITier(t *testing.T) {
	ai := DefaultAIConfig()
	hard, err := ai.Tier(steer.Hard)
	if err != nil {
		t.Fatalf("Tier(hard) failed: %v", err)
	}
	easy, _ := ai.Tier(steer.Easy)
	if hard.Speed <= easy.Speed || hard.TurnRate <= easy.TurnRate {
		t.Errorf("hard %+v should be more aggressive than easy %+v", hard, easy)
	}
	if _, err := ai.Tier(steer.Level("insane")); !errors.Is(err, ErrInvalid) {
		t.Errorf("Tier(insane) = %v, expected ErrInvalid", err)
	}
}

func TestRamp(t *testing.T) {
	r := Ramp{Base: 1, PerTick: 0.5, Max: 3}

	tests := []struct {
		ticks    int
		value    float64
		progress float64
	}{
		{0, 1, 0},
		{2, 2, 0.5},
		{4, 3, 1},
		{100, 3, 1},
	}

	for _, tc := range tests {
		if got := r.At(tc.ticks); got != tc.value {
			t.Errorf("At(%d) = %v, expected %v", tc.ticks, got, tc.value)
		}
		if got := r.Level(tc.ticks); got != tc.progress {
			t.Errorf("Level(%d) = %v, expected %v", tc.ticks, got, tc.progress)
		}
	}

	if err := (Ramp{Base: 2, Max: 1}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate() = %v, expected ErrInvalid", err)
	}
}
