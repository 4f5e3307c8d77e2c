// Package config persists the capture region as a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"live-translate/pkg/geometry"
)

// DefaultPath is the config file next to the binary's working directory.
const DefaultPath = "config.json"

// DefaultRegion is the capture rectangle used until the user selects one.
// Sized for a chat box in the lower-left of a 1920x1080 screen.
var DefaultRegion = geometry.RectInt{Left: 40, Top: 830, Right: 780, Bottom: 1070}

// Config holds the persisted settings. Currently just the capture
// rectangle; new fields belong here.
type Config struct {
	CaptureRect geometry.RectInt `json:"capture_rect"`
}

// Default returns a Config with the default capture region.
func Default() Config {
	return Config{CaptureRect: DefaultRegion}
}

// Load reads the config from path. A missing file is not an error and
// yields the defaults. Malformed content returns the defaults together
// with a parse error so the caller can decide how loudly to complain.
//
// Degenerate rectangles (right <= left or bottom <= top) load and save
// without validation; the capture path reports them at grab time.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories if needed.
// Called synchronously on every region change.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
