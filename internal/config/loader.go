package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load reads the configuration for a title.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default
func load[T any](id, customPath string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := id + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = fallback()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = fallback()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// PathFor maps a --config value to a title's file. A directory yields
// <dir>/<id>.yaml when that file exists and "" otherwise, so titles without
// an override fall back to the normal search. Anything else is used as is.
func PathFor(path, id string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path
	}
	file := filepath.Join(path, id+".yaml")
	if _, err := os.Stat(file); err != nil {
		return ""
	}
	return file
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadKart loads Kart Havoc configuration.
func LoadKart(customPath string) (KartConfig, error) {
	return load("kart", customPath, defaultKartYAML, DefaultKartConfig)
}

// LoadSoccer loads Soccer Scramble configuration.
func LoadSoccer(customPath string) (SoccerConfig, error) {
	return load("soccer", customPath, defaultSoccerYAML, DefaultSoccerConfig)
}

// LoadGoldGrab loads Goblin Gold Grab configuration.
func LoadGoldGrab(customPath string) (GoldGrabConfig, error) {
	return load("goldgrab", customPath, defaultGoldGrabYAML, DefaultGoldGrabConfig)
}

// LoadBounce loads Build 'n' Bounce configuration.
func LoadBounce(customPath string) (BounceConfig, error) {
	return load("bounce", customPath, defaultBounceYAML, DefaultBounceConfig)
}

// LoadAstro loads Astro Clash configuration.
func LoadAstro(customPath string) (AstroConfig, error) {
	return load("astro", customPath, defaultAstroYAML, DefaultAstroConfig)
}
