package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mikanfactory/jopen/internal/model"
)

const DefaultListWidth = 40
const DefaultGitTimeout = 10 * time.Second

// Environment variables that override the file.
const (
	EnvBaseURL  = "JIRA_BASE_URL"
	EnvUsername = "JIRA_USERNAME"
	EnvToken    = "JIRA_API_TOKEN"
)

// Default returns a config with every default applied. Jira search
// defaults are left to jira.NewClient.
func Default() model.Config {
	cfg := model.Config{}
	applyDefaults(&cfg)
	return cfg
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.ListWidth < 0 {
		return model.Config{}, fmt.Errorf("list_width must not be negative, got %d", cfg.ListWidth)
	}
	if cfg.Jira.MaxResults < 0 {
		return model.Config{}, fmt.Errorf("jira.max_results must not be negative, got %d", cfg.Jira.MaxResults)
	}

	applyDefaults(&cfg)

	if cfg.DebugLog != "" {
		expanded, err := expandHome(cfg.DebugLog)
		if err != nil {
			return model.Config{}, err
		}
		cfg.DebugLog = expanded
	}

	return cfg, nil
}

func applyDefaults(cfg *model.Config) {
	if cfg.ListWidth == 0 {
		cfg.ListWidth = DefaultListWidth
	}
	if cfg.Git.Timeout == 0 {
		cfg.Git.Timeout = DefaultGitTimeout
	}
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// ApplyEnv overrides Jira connection settings with non-empty environment values.
func ApplyEnv(cfg model.Config, getenv func(string) string) model.Config {
	if v := getenv(EnvBaseURL); v != "" {
		cfg.Jira.BaseURL = v
	}
	if v := getenv(EnvUsername); v != "" {
		cfg.Jira.Username = v
	}
	if v := getenv(EnvToken); v != "" {
		cfg.Jira.Token = v
	}
	return cfg
}

// ResolveConfigPath determines the config file path from flag or default location.
// It returns "" without error when no flag is given and the default file is absent.
func ResolveConfigPath(flagPath string) (string, error) {
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", flagPath)
		}
		return flagPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	defaultPath := filepath.Join(home, ".config", "jopen", "config.yaml")
	if _, err := os.Stat(defaultPath); err != nil {
		return "", nil
	}

	return defaultPath, nil
}

// Load resolves the config path, loads the file if there is one and
// applies environment overrides.
func Load(flagPath string, getenv func(string) string) (model.Config, error) {
	path, err := ResolveConfigPath(flagPath)
	if err != nil {
		return model.Config{}, err
	}

	cfg := Default()
	if path != "" {
		cfg, err = LoadFromFile(path)
		if err != nil {
			return model.Config{}, err
		}
	}

	return ApplyEnv(cfg, getenv), nil
}
