// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Declarative runtime configuration, loadable from TOML.

package control

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config tunes the assembled runtime.
type Config struct {
	// TimerCapacity bounds the timer queue; registrations beyond it are
	// dropped.
	TimerCapacity int `toml:"timer_capacity"`

	// LocalExecutors is the number of per-CPU executors the runtime may
	// host in addition to the default one. Zero disables core-local
	// spawning.
	LocalExecutors int `toml:"local_executors"`

	// PinLocalExecutors pins each per-CPU executor's hosting thread to
	// its core index.
	PinLocalExecutors bool `toml:"pin_local_executors"`

	// LogLevel selects the zerolog level: trace, debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the runtime defaults.
func DefaultConfig() Config {
	return Config{
		TimerCapacity: 32,
		LogLevel:      "info",
	}
}

// LoadConfig reads a TOML config file, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("control: read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("control: parse config: %w", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateConfig rejects out-of-range settings.
func ValidateConfig(cfg Config) error {
	if cfg.TimerCapacity < 1 {
		return fmt.Errorf("control: timer_capacity must be positive, got %d", cfg.TimerCapacity)
	}
	if cfg.LocalExecutors < 0 {
		return fmt.Errorf("control: local_executors must be non-negative, got %d", cfg.LocalExecutors)
	}
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("control: unknown log_level %q", cfg.LogLevel)
	}
	return nil
}
