package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrMissingBotToken is returned when no Telegram bot token is
	// configured. The bot cannot start without it; set
	// TELEGRAM_BOT_TOKEN.
	ErrMissingBotToken = errors.New("telegram bot token is not set: export TELEGRAM_BOT_TOKEN")

	// ErrInvalidMaxKeywords is returned when the keyword limit is not
	// positive. A limit of zero would reject every input message.
	ErrInvalidMaxKeywords = errors.New("invalid max keywords: must be positive")

	// ErrInvalidSessionTimeout is returned when the per-session fetch
	// timeout is not positive. It must exceed the remote poll budget or
	// every remote fetch would be cut short.
	ErrInvalidSessionTimeout = errors.New("invalid session timeout: must be positive")

	// ErrInvalidConcurrency is returned when the update-dispatch
	// concurrency is not positive. Zero would stall update handling
	// entirely.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
