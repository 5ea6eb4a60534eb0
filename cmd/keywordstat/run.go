package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/keywordstat/internal/bot"
	"github.com/nao1215/keywordstat/internal/config"
	"github.com/nao1215/keywordstat/internal/export"
	"github.com/nao1215/keywordstat/internal/log"
	"github.com/nao1215/keywordstat/internal/provider"
	"github.com/nao1215/keywordstat/internal/wordstat"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the Telegram bot",
		Long: `Run starts the Telegram bot and serves users until interrupted.

Credentials come from the environment:
  TELEGRAM_BOT_TOKEN   Telegram bot token (required)
  YANDEX_OAUTH_TOKEN   Yandex Direct OAuth token (optional)
  YANDEX_CLIENT_LOGIN  Yandex Direct client login (optional)

Without YANDEX_OAUTH_TOKEN the bot answers with deterministic offline
data instead of live Wordstat statistics.

Examples:
  # Start the bot with the default configuration discovery
  keywordstat run

  # Use a custom configuration file
  keywordstat run -c myconfig.yaml

Configuration file (.keywordstat) example:
  client_login: my-agency-client
  max_keywords: 200
  session_timeout: 90s
  concurrency: 10`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .keywordstat in current or XDG config directory)")
	cmd.Flags().IntP("concurrency", "n", 0,
		"Number of Telegram updates handled concurrently (overrides config file)")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidateBot(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential redaction
	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping...")
		cancel()
	}()

	b, err := bot.New(cfg, newProvider(cfg, logger), export.NewExcel(), logger)
	if err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	return b.Run(ctx)
}

// buildRunConfig creates a Config from the config file, environment, and flags.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newProvider selects the frequency data source. A configured OAuth token
// selects the live Wordstat client; otherwise the offline generator is used.
func newProvider(cfg *config.Config, logger *slog.Logger) provider.Provider {
	if cfg.UseOffline() {
		logger.Info("no Yandex OAuth token configured, using offline data")
		return provider.NewOffline()
	}

	opts := []wordstat.Option{
		wordstat.WithLogger(logger),
	}
	if cfg.ClientLogin != "" {
		opts = append(opts, wordstat.WithClientLogin(cfg.ClientLogin))
	}
	return wordstat.NewClient(cfg.OAuthToken, opts...)
}
