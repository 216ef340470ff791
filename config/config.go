// Package config loads node configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/naoina/toml"
)

// Server configures the HTTP surface.
type Server struct {
	Listen string
}

// DB configures the registry's durable store.
type DB struct {
	Path string
}

// Log configures logging.
type Log struct {
	Level string // "debug", "info", "warn", "error"
}

// Oracle configures verification policy.
type Oracle struct {
	// ExpectedSigner, when set, is the only Ethereum address whose
	// signatures verify. Empty means any recovered signer is accepted.
	ExpectedSigner string
}

// Config is the full node configuration.
type Config struct {
	Server Server
	DB     DB
	Log    Log
	Oracle Oracle
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: Server{Listen: ":8402"},
		DB:     DB{Path: "data/registry"},
		Log:    Log{Level: "info"},
	}
}

// Load reads a TOML configuration file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
