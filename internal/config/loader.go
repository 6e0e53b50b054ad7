package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvConfig    = "FLAPPY_CONFIG"
	EnvScoreFile = "FLAPPY_SCORE_FILE"
	EnvDB        = "FLAPPY_DB"
)

// LoadEnv loads KEY=VALUE pairs from the given dotenv files (default ".env")
// into the process environment. Missing files are not an error; variables
// already set in the environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: cannot load env files: %w", err)
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if
// it is unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadFlappy loads and validates the game configuration.
// Search order: customPath -> $FLAPPY_CONFIG -> ~/.flappy/config.yaml ->
// ./configs/flappy.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	if customPath == "" {
		customPath = os.Getenv(EnvConfig)
	}

	// An explicit path must exist and parse
	if customPath != "" {
		cfg, err := parseFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "flappy.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := parseFile(path); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// parseFile reads a YAML file over the default configuration.
func parseFile(path string) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a file in the user config directory,
// or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", filename)
}
