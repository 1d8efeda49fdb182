// Copyright 2025 zkLocus Contributors
//
// Package zkconfig loads the proof engine's process-wide configuration
// from YAML, with ${VAR:-default} environment-variable substitution, the
// same convention the teacher's pkg/config/anchor_config.go uses for its
// own YAML settings.
package zkconfig

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a zkLocus process.
type Config struct {
	// MaxFactor is a fixed-point decimal factor ceiling, validated to lie in
	// [0,7] (spec.md section 3). Coordinate validation in pkg/geotypes uses
	// its own geotypes.MaxFactor constant and does not read this value.
	MaxFactor int `yaml:"max_factor"`

	// KeyDir names a directory for per-circuit proving/verification keys.
	// Validate requires it to be non-empty; no code in this module reads or
	// writes keys there (snark.Prover's key I/O takes explicit paths).
	KeyDir string `yaml:"key_dir"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures pkg/zklog.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// DefaultConfig returns sensible defaults requiring no file on disk.
func DefaultConfig() *Config {
	return &Config{
		MaxFactor: 7,
		KeyDir:    "./zklocus-keys",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Load reads a YAML config file from path, substituting ${VAR} and
// ${VAR:-default} references against the process environment before
// parsing.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := substituteEnvVars(string(raw))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		name := groups[1]
		def := ""
		if len(groups) >= 4 {
			def = groups[3]
		}
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return def
	})
}

// Validate checks the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.MaxFactor < 0 || c.MaxFactor > 7 {
		return fmt.Errorf("max_factor %d out of range [0,7]", c.MaxFactor)
	}
	if c.KeyDir == "" {
		return fmt.Errorf("key_dir must not be empty")
	}
	return nil
}
