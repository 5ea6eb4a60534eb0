package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".keywordstat"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// fileConfig is the YAML shape of the configuration file. Only non-secret
// settings live here; credentials come from the environment.
type fileConfig struct {
	ClientLogin    string `yaml:"client_login"`
	MaxKeywords    int    `yaml:"max_keywords"`
	SessionTimeout string `yaml:"session_timeout"`
	Concurrency    int    `yaml:"concurrency"`
}

// Load builds the effective configuration: defaults, then the config file
// (if one is found), then environment variables.
//
// If cfgPath is non-empty it must exist; a missing explicitly-requested
// file is an error, while a missing discovered file is not.
func Load(cfgPath string) (*Config, error) {
	cfg := NewConfig()
	cfg.ConfigFilePath = cfgPath

	path := FindConfigFile(cfgPath)
	if path == "" && cfgPath != "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, cfgPath)
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays settings from the YAML file at path.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.ClientLogin != "" {
		cfg.ClientLogin = fc.ClientLogin
	}
	if fc.MaxKeywords > 0 {
		cfg.MaxKeywords = fc.MaxKeywords
	}
	if fc.Concurrency > 0 {
		cfg.Concurrency = fc.Concurrency
	}
	if fc.SessionTimeout != "" {
		d, err := time.ParseDuration(fc.SessionTimeout)
		if err != nil {
			return fmt.Errorf("session_timeout: %w", err)
		}
		cfg.SessionTimeout = d
	}
	return nil
}

// applyEnv overlays settings from environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.BotToken = v
	}
	if v := os.Getenv("YANDEX_OAUTH_TOKEN"); v != "" {
		cfg.OAuthToken = v
	}
	if v := os.Getenv("YANDEX_CLIENT_LOGIN"); v != "" {
		cfg.ClientLogin = v
	}
	if v := os.Getenv("MAX_KEYWORDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_KEYWORDS: %w", err)
		}
		cfg.MaxKeywords = n
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If cfgPath is specified, use it directly
//  2. Look for .keywordstat in the current directory
//  3. Look for .keywordstat under the XDG config home
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(cfgPath string) string {
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
