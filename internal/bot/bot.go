package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/keywordstat/internal/config"
	"github.com/nao1215/keywordstat/internal/export"
	"github.com/nao1215/keywordstat/internal/provider"
)

// updateTimeout is the long-poll timeout, in seconds, passed to the
// Telegram getUpdates call.
const updateTimeout = 30

// Bot is the running Telegram front-end: a long-poll update loop that
// dispatches updates to the Handler with bounded concurrency.
type Bot struct {
	// botAPI is the authenticated Telegram client.
	botAPI *tgbotapi.BotAPI

	// handler drives the per-chat keyword flow.
	handler *Handler

	// concurrency bounds simultaneously handled updates.
	concurrency int

	// logger receives lifecycle events.
	logger *slog.Logger
}

// New authenticates against the Telegram API and assembles the bot.
func New(cfg *config.Config, p provider.Provider, e export.Exporter, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	return &Bot{
		botAPI:      botAPI,
		handler:     NewHandler(botAPI, p, e, cfg.MaxKeywords, cfg.SessionTimeout, logger),
		concurrency: cfg.Concurrency,
		logger:      logger,
	}, nil
}

// Run receives updates until ctx is cancelled, then drains in-flight
// handlers and returns.
//
// Updates are dispatched onto an errgroup with a concurrency limit:
// chats are independent, so one chat's minute-long Wordstat fetch must not
// delay replies to other chats. Handler goroutines never return errors
// (every failure is surfaced to the affected user), so the group exists
// purely for the limit and the final drain.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started",
		"username", b.botAPI.Self.UserName,
		"provider", b.handler.provider.Name(),
		"concurrency", b.concurrency,
	)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = updateTimeout
	updates := b.botAPI.GetUpdatesChan(updateConfig)

	// Closing the update channel is the only way to end the range loop
	// below; the library offers no context-aware receive.
	go func() {
		<-ctx.Done()
		b.botAPI.StopReceivingUpdates()
	}()

	g := &errgroup.Group{}
	g.SetLimit(b.concurrency)

	for update := range updates {
		g.Go(func() error {
			b.handler.HandleUpdate(ctx, update)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	b.logger.Info("bot stopped")
	return nil
}
