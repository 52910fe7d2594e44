package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	// BackendURL is the base origin of the study-plan backend.
	BackendURL string `yaml:"backend_url"`

	// TimeoutMs is the per-request deadline for remote calls.
	TimeoutMs int `yaml:"timeout_ms"`

	// Debug mirrors log output to stderr and lowers the log level.
	Debug bool `yaml:"debug"`

	// Dir is where the profile cache and logs live. Not settable from
	// the config file (the file lives inside it).
	Dir string `yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BackendURL: "http://localhost:8000",
		TimeoutMs:  10000,
	}
}

// LoadConfig resolves configuration in three layers: defaults, then the
// optional YAML file at <dir>/config.yaml, then PLANNER_* environment
// variables. A missing or malformed file is ignored field by field —
// configuration loading never fails.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.Dir = configDir()

	applyFile(&cfg, filepath.Join(cfg.Dir, "config.yaml"))
	applyEnv(&cfg)

	return cfg
}

func configDir() string {
	if v := os.Getenv("PLANNER_CONFIG_DIR"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ai-planner"
	}
	return filepath.Join(home, ".ai-planner")
}

func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var f Config
	if err := yaml.Unmarshal(data, &f); err != nil {
		return
	}
	if f.BackendURL != "" {
		cfg.BackendURL = f.BackendURL
	}
	if f.TimeoutMs > 0 {
		cfg.TimeoutMs = f.TimeoutMs
	}
	if f.Debug {
		cfg.Debug = true
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANNER_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("PLANNER_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PLANNER_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}
}
