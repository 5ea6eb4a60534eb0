package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearCredentialEnv blanks the credential variables so the test run is
// independent of the developer's shell.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("YANDEX_OAUTH_TOKEN", "")
	t.Setenv("YANDEX_CLIENT_LOGIN", "")
	t.Setenv("MAX_KEYWORDS", "")
}

// TestNewFetchCmd tests the fetch command creation.
func TestNewFetchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewFetchCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "fetch [phrase]..." {
			t.Errorf("expected use 'fetch [phrase]...', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"file", "frequency", "limit", "json", "markdown", "text", "output", "config"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestFetchMarkdownToStdout runs the full offline pipeline and checks the
// Markdown table lands on standard output.
func TestFetchMarkdownToStdout(t *testing.T) {
	clearCredentialEnv(t)
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"fetch", "--markdown", "купить iphone"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Keyword Report") {
		t.Errorf("expected a Markdown report header, got:\n%s", output)
	}
	if !strings.Contains(output, "купить iphone") {
		t.Errorf("expected the phrase in the output, got:\n%s", output)
	}
}

// TestFetchWritesSpreadsheet verifies the default Excel output path.
func TestFetchWritesSpreadsheet(t *testing.T) {
	clearCredentialEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	outPath := filepath.Join(dir, "out", "report.xlsx")
	cmd.SetArgs([]string{"fetch", "--frequency", "--limit", "10", "-o", outPath, "ноутбук"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty spreadsheet")
	}
	if !strings.Contains(buf.String(), "Wrote 10 keywords") {
		t.Errorf("expected a summary line, got %q", buf.String())
	}
}

// TestFetchPhrasesFromFile verifies --file input feeds the parser.
func TestFetchPhrasesFromFile(t *testing.T) {
	clearCredentialEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	phrasePath := filepath.Join(dir, "phrases.txt")
	if err := os.WriteFile(phrasePath, []byte("слово один\nслово два; слово три"), 0600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"fetch", "--text", "--file", phrasePath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, phrase := range []string{"слово один", "слово два", "слово три"} {
		if !strings.Contains(output, phrase) {
			t.Errorf("expected %q in the output", phrase)
		}
	}
}

// TestFetchJSONToStdout verifies --json emits a decodable array.
func TestFetchJSONToStdout(t *testing.T) {
	clearCredentialEnv(t)
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"fetch", "--json", "--limit", "5", "слово"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode output: %v\n%s", err, buf.String())
	}
	if len(decoded) != 5 {
		t.Errorf("got %d rows, expected 5", len(decoded))
	}
}

// TestFetchFlagValidation tests rejected flag combinations.
func TestFetchFlagValidation(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{
			name: "markdown and text together",
			args: []string{"fetch", "--markdown", "--text", "слово"},
		},
		{
			name: "json and markdown together",
			args: []string{"fetch", "--json", "--markdown", "слово"},
		},
		{
			name: "negative limit",
			args: []string{"fetch", "--limit", "-5", "слово"},
		},
		{
			name: "no phrases at all",
			args: []string{"fetch"},
		},
		{
			name: "missing explicit config file",
			args: []string{"fetch", "-c", "does-not-exist.yaml", "слово"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearCredentialEnv(t)
			t.Chdir(t.TempDir())

			cmd := NewRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tc.args)

			if err := cmd.Execute(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
