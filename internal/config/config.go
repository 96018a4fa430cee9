// Package config holds the named preprocessing parameters read by the
// threshold producer and the debug helpers.
//
// A Config is a plain value: callers build one with Default, FromMap or Load
// and pass it by value. Nothing in this module mutates a Config it is given.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidInput marks an empty image or a malformed configuration value.
// Functions wrap it, so test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Config lists the tunable parameters of the preprocessing layer.
type Config struct {
	// WolfWindowLow and WolfKLow drive the first Wolf-Jolion pass.
	WolfWindowLow int     `toml:"wolf_window_low"`
	WolfKLow      float64 `toml:"wolf_k_low"`

	// WolfWindowHigh and WolfKHigh drive the second Wolf-Jolion pass.
	WolfWindowHigh int     `toml:"wolf_window_high"`
	WolfKHigh      float64 `toml:"wolf_k_high"`

	SauvolaWindow int     `toml:"sauvola_window"`
	SauvolaK      float64 `toml:"sauvola_k"`

	// AdaptiveBlockSize must be odd and at least 3.
	AdaptiveBlockSize int     `toml:"adaptive_block_size"`
	AdaptiveC         float64 `toml:"adaptive_c"`

	// PreBlurRadius applies a Gaussian blur before every pass. 0 disables it.
	PreBlurRadius float64 `toml:"pre_blur_radius"`

	DebugGeneral bool   `toml:"debug_general"`
	DebugTiming  bool   `toml:"debug_timing"`
	DebugDir     string `toml:"debug_dir"`
}

// Default returns the parameters used when a key is absent.
func Default() Config {
	return Config{
		WolfWindowLow:     18,
		WolfKLow:          0.05,
		WolfWindowHigh:    22,
		WolfKHigh:         0.40,
		SauvolaWindow:     12,
		SauvolaK:          0.18,
		AdaptiveBlockSize: 13,
		AdaptiveC:         3,
	}
}

// Validate reports the first malformed parameter, wrapped in ErrInvalidInput.
func (c Config) Validate() error {
	windows := []struct {
		key string
		v   int
	}{
		{"wolf_window_low", c.WolfWindowLow},
		{"wolf_window_high", c.WolfWindowHigh},
		{"sauvola_window", c.SauvolaWindow},
	}
	for _, w := range windows {
		if w.v < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidInput, w.key, w.v)
		}
	}

	ks := []struct {
		key string
		v   float64
	}{
		{"wolf_k_low", c.WolfKLow},
		{"wolf_k_high", c.WolfKHigh},
		{"sauvola_k", c.SauvolaK},
	}
	for _, k := range ks {
		if k.v < 0 || k.v > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %g", ErrInvalidInput, k.key, k.v)
		}
	}

	if c.AdaptiveBlockSize < 3 || c.AdaptiveBlockSize%2 == 0 {
		return fmt.Errorf("%w: adaptive_block_size must be odd and >= 3, got %d", ErrInvalidInput, c.AdaptiveBlockSize)
	}
	if c.PreBlurRadius < 0 {
		return fmt.Errorf("%w: pre_blur_radius must not be negative, got %g", ErrInvalidInput, c.PreBlurRadius)
	}
	return nil
}

// Load reads a TOML file on top of the defaults. Keys missing from the file
// keep their default value, unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown config key %q", ErrInvalidInput, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap applies string-valued overrides, keyed like the TOML file, to the
// defaults. Absent keys keep their default value.
func FromMap(values map[string]string) (Config, error) {
	cfg := Default()
	if err := cfg.apply(values); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// With returns a copy of c with the string-valued overrides applied.
func (c Config) With(values map[string]string) (Config, error) {
	if err := c.apply(values); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) apply(values map[string]string) error {
	for key, raw := range values {
		raw = strings.TrimSpace(raw)
		var err error
		switch key {
		case "wolf_window_low":
			c.WolfWindowLow, err = strconv.Atoi(raw)
		case "wolf_k_low":
			c.WolfKLow, err = strconv.ParseFloat(raw, 64)
		case "wolf_window_high":
			c.WolfWindowHigh, err = strconv.Atoi(raw)
		case "wolf_k_high":
			c.WolfKHigh, err = strconv.ParseFloat(raw, 64)
		case "sauvola_window":
			c.SauvolaWindow, err = strconv.Atoi(raw)
		case "sauvola_k":
			c.SauvolaK, err = strconv.ParseFloat(raw, 64)
		case "adaptive_block_size":
			c.AdaptiveBlockSize, err = strconv.Atoi(raw)
		case "adaptive_c":
			c.AdaptiveC, err = strconv.ParseFloat(raw, 64)
		case "pre_blur_radius":
			c.PreBlurRadius, err = strconv.ParseFloat(raw, 64)
		case "debug_general":
			c.DebugGeneral, err = strconv.ParseBool(raw)
		case "debug_timing":
			c.DebugTiming, err = strconv.ParseBool(raw)
		case "debug_dir":
			c.DebugDir = raw
		default:
			return fmt.Errorf("%w: unknown config key %q", ErrInvalidInput, key)
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, key, err)
		}
	}
	return nil
}
