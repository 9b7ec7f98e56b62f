package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidConfig wraps validation failures of a loaded config file.
var ErrInvalidConfig = errors.New("invalid configuration")

// ServerConfig holds the tunable settings of the coordinator.
type ServerConfig struct {
	// DefaultRoom is the room participants join when naming none.
	DefaultRoom string `json:"default_room"`
	// TicketMaxAttempts bounds the ticket generator's internal retries.
	TicketMaxAttempts int `json:"ticket_max_attempts"`
	// AllowedOrigins restricts websocket upgrades; empty allows any origin.
	AllowedOrigins []string `json:"allowed_origins"`
}

// Default returns the built-in configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		DefaultRoom:       "default",
		TicketMaxAttempts: 10,
	}
}

// Load reads a configuration file, fills unset fields with defaults, applies
// environment overrides, and validates the result. An empty path or a
// missing file yields the defaults (still env-overridable).
func Load(path string) (*ServerConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// applyEnvOverrides lets deployment environments tweak settings without a
// config file. BINGO_ALLOWED_ORIGINS is comma-separated.
func applyEnvOverrides(cfg *ServerConfig) {
	if v := os.Getenv("BINGO_DEFAULT_ROOM"); v != "" {
		cfg.DefaultRoom = v
	}
	if v := os.Getenv("BINGO_TICKET_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TicketMaxAttempts = n
		}
	}
	if v := os.Getenv("BINGO_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
}

func validate(cfg *ServerConfig) error {
	if cfg.DefaultRoom == "" {
		return fmt.Errorf("default_room must not be empty")
	}
	if cfg.TicketMaxAttempts < 1 {
		return fmt.Errorf("ticket_max_attempts must be at least 1, got %d", cfg.TicketMaxAttempts)
	}
	return nil
}
