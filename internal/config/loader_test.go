package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoad tests the layered configuration loading.
// These tests set environment variables and change directories, so they do
// not run in parallel with each other.
func TestLoad(t *testing.T) {
	t.Run("defaults when nothing is configured", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxKeywords != DefaultMaxKeywords {
			t.Errorf("got MaxKeywords %d, expected default %d", cfg.MaxKeywords, DefaultMaxKeywords)
		}
		if cfg.BotToken != "" {
			t.Errorf("got BotToken %q, expected empty", cfg.BotToken)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, DefaultConfigFile),
			"max_keywords: 50\nclient_login: agency\nsession_timeout: 2m\nconcurrency: 3\n")
		t.Chdir(dir)

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxKeywords != 50 {
			t.Errorf("got MaxKeywords %d, expected 50", cfg.MaxKeywords)
		}
		if cfg.ClientLogin != "agency" {
			t.Errorf("got ClientLogin %q, expected %q", cfg.ClientLogin, "agency")
		}
		if cfg.SessionTimeout != 2*time.Minute {
			t.Errorf("got SessionTimeout %v, expected 2m", cfg.SessionTimeout)
		}
		if cfg.Concurrency != 3 {
			t.Errorf("got Concurrency %d, expected 3", cfg.Concurrency)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, DefaultConfigFile), "max_keywords: 50\n")
		t.Chdir(dir)

		t.Setenv("MAX_KEYWORDS", "75")
		t.Setenv("TELEGRAM_BOT_TOKEN", "12345:abc")
		t.Setenv("YANDEX_OAUTH_TOKEN", "y0_secret")
		t.Setenv("YANDEX_CLIENT_LOGIN", "env-login")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxKeywords != 75 {
			t.Errorf("got MaxKeywords %d, expected 75", cfg.MaxKeywords)
		}
		if cfg.BotToken != "12345:abc" {
			t.Errorf("got BotToken %q, expected %q", cfg.BotToken, "12345:abc")
		}
		if cfg.OAuthToken != "y0_secret" {
			t.Errorf("got OAuthToken %q, expected %q", cfg.OAuthToken, "y0_secret")
		}
		if cfg.ClientLogin != "env-login" {
			t.Errorf("got ClientLogin %q, expected %q", cfg.ClientLogin, "env-login")
		}
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		clearEnv(t)

		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("got %v, expected ErrConfigNotFound", err)
		}
	})

	t.Run("invalid MAX_KEYWORDS is an error", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())
		t.Setenv("MAX_KEYWORDS", "lots")

		if _, err := Load(""); err == nil {
			t.Error("expected an error for a non-numeric MAX_KEYWORDS")
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, DefaultConfigFile), "max_keywords: [not a number\n")
		t.Chdir(dir)

		if _, err := Load(""); err == nil {
			t.Error("expected an error for malformed yaml")
		}
	})
}

// TestFindConfigFile tests discovery order.
func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path wins when it exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, path, "max_keywords: 1\n")

		if got := FindConfigFile(path); got != path {
			t.Errorf("got %q, expected %q", got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("got %q, expected empty", got)
		}
	})

	t.Run("current directory is searched", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		writeFile(t, path, "max_keywords: 1\n")
		t.Chdir(dir)

		got := FindConfigFile("")
		// Resolve symlinks (macOS TempDir lives under /var -> /private/var).
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("got %q, expected a path ending in %q", got, DefaultConfigFile)
		}
	})
}

// clearEnv unsets every environment variable the loader reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TELEGRAM_BOT_TOKEN", "YANDEX_OAUTH_TOKEN", "YANDEX_CLIENT_LOGIN", "MAX_KEYWORDS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// writeFile writes content to path, failing the test on error.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
