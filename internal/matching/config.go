package matching

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultSweepInterval = 10 * time.Second
	defaultPushTimeout   = 5 * time.Second
)

// MatchConfig holds runtime configuration for the matching module.
type MatchConfig struct {
	SweepInterval time.Duration
	PushTimeout   time.Duration
}

// LoadMatchConfig reads configuration from environment variables and applies
// defaults.
func LoadMatchConfig() (MatchConfig, error) {
	cfg := MatchConfig{
		SweepInterval: defaultSweepInterval,
		PushTimeout:   defaultPushTimeout,
	}

	if v := os.Getenv("MATCH_SWEEP_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return MatchConfig{}, fmt.Errorf("parse MATCH_SWEEP_SECONDS: %w", err)
		}
		cfg.SweepInterval = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("MATCH_PUSH_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return MatchConfig{}, fmt.Errorf("parse MATCH_PUSH_TIMEOUT_SECONDS: %w", err)
		}
		cfg.PushTimeout = time.Duration(secs) * time.Second
	}

	if cfg.SweepInterval <= 0 {
		return MatchConfig{}, fmt.Errorf("MATCH_SWEEP_SECONDS must be positive")
	}
	if cfg.PushTimeout <= 0 {
		return MatchConfig{}, fmt.Errorf("MATCH_PUSH_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}
