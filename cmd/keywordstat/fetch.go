package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/keywordstat/internal/config"
	"github.com/nao1215/keywordstat/internal/export"
	"github.com/nao1215/keywordstat/internal/log"
	"github.com/nao1215/keywordstat/internal/parser"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [phrase]...",
		Short: "Fetch keyword statistics without Telegram",
		Long: `Fetch performs a one-shot keyword lookup from the terminal.

Phrases come from positional arguments, a file (--file), or both. Each
argument may itself hold several phrases separated by commas, semicolons,
or newlines. The result is written as an Excel spreadsheet by default;
--json, --markdown, and --text switch to textual formats on standard
output.

Examples:
  # Look up two phrases and write keywords.xlsx
  keywordstat fetch "купить iphone" "ноутбук цена"

  # Read phrases from a file, one or more per line
  keywordstat fetch --file phrases.txt

  # Include search-volume numbers and keep the first 100 rows
  keywordstat fetch --frequency --limit 100 "ремонт квартир"

  # Print a Markdown table instead of writing a spreadsheet
  keywordstat fetch --markdown "купить iphone"`,
		Args: cobra.ArbitraryArgs,
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("file", "f", "",
		"Read phrases from the specified file")
	cmd.Flags().Bool("frequency", false,
		"Include monthly search-volume numbers")
	cmd.Flags().IntP("limit", "l", 0,
		"Keep at most this many result rows (0 keeps all)")

	// Output flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown and --text)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown table (mutually exclusive with --json and --text)")
	cmd.Flags().BoolP("text", "t", false,
		"Output a plain-text table (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write the result to the specified file path (creates directories if needed)")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .keywordstat in current or XDG config directory)")

	return cmd
}

// fetchOptions holds the parsed fetch command flags.
type fetchOptions struct {
	phrases       []string
	withFrequency bool
	limit         int
	exporter      export.Exporter
	toStdout      bool
	outputPath    string
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	opts, err := buildFetchOptions(cmd, args, cfg.MaxKeywords)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := newProvider(cfg, logger)
	rows, err := p.Fetch(ctx, opts.phrases, opts.withFrequency)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	if opts.limit > 0 && len(rows) > opts.limit {
		rows = rows[:opts.limit]
	}

	data, err := opts.exporter.Export(rows)
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}

	if opts.toStdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeOutputFile(opts.outputPath, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d keywords to %s\n", len(rows), opts.outputPath)
	return nil
}

// buildFetchOptions validates flags and collects the phrase list.
func buildFetchOptions(cmd *cobra.Command, args []string, maxKeywords int) (*fetchOptions, error) {
	opts := &fetchOptions{}

	var err error
	opts.withFrequency, err = cmd.Flags().GetBool("frequency")
	if err != nil {
		return nil, err
	}
	opts.limit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, err
	}
	if opts.limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", opts.limit)
	}

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	text, err := cmd.Flags().GetBool("text")
	if err != nil {
		return nil, err
	}
	formats := 0
	for _, set := range []bool{jsonOut, markdown, text} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return nil, errors.New("--json, --markdown, and --text are mutually exclusive")
	}

	opts.outputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	switch {
	case jsonOut:
		opts.exporter = export.NewJSON()
	case markdown:
		opts.exporter = export.NewMarkdown()
	case text:
		opts.exporter = export.NewSimple()
	default:
		opts.exporter = export.NewExcel()
	}
	// Textual formats go to stdout unless a file was requested. The
	// spreadsheet always goes to a file.
	opts.toStdout = formats > 0 && opts.outputPath == ""
	if !opts.toStdout && opts.outputPath == "" {
		opts.outputPath = "keywords" + opts.exporter.Extension()
	}

	opts.phrases, err = collectPhrases(cmd, args, maxKeywords)
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// collectPhrases merges positional arguments and the --file contents into
// a single parsed phrase list.
func collectPhrases(cmd *cobra.Command, args []string, maxKeywords int) ([]string, error) {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, args...)

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	if file != "" {
		data, err := os.ReadFile(file) //nolint:gosec // User-provided phrase file is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to read phrase file: %w", err)
		}
		parts = append(parts, string(data))
	}

	phrases, err := parser.Parse(strings.Join(parts, "\n"), maxKeywords)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyInput) || errors.Is(err, parser.ErrNoKeywords) {
			return nil, errors.New("no phrases provided (pass them as arguments or via --file)")
		}
		return nil, err
	}
	return phrases, nil
}

// writeOutputFile writes data to path, creating parent directories.
func writeOutputFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
