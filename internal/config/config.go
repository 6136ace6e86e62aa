// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"sync"

	"jewel-pricing/core/types"
	"jewel-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Engine contains orchestrator settings
	Engine EngineConfig `json:"engine"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// EngineConfig contains orchestrator-related settings
type EngineConfig struct {
	// GroupSize bounds in-flight products per group (0 = default)
	GroupSize int `json:"group_size"`

	// TraceEnabled includes the derivation trace in run output
	TraceEnabled bool `json:"trace_enabled"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1",
		Engine: EngineConfig{
			GroupSize:    types.DefaultGroupSize,
			TraceEnabled: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

var (
	current = Default()
	mu      sync.RWMutex
)

// Load reads configuration from a JSON file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the current configuration
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}
