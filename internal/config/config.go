package config

import "time"

// Default configuration values.
// These match the behavior of the keyword services involved: Wordstat
// accepts long phrase batches, and report generation dominates latency.
const (
	// DefaultMaxKeywords bounds how many unique phrases one message may
	// contain. 200 keeps the Wordstat report request well under the
	// API's batch limits while still covering realistic keyword lists.
	DefaultMaxKeywords = 200

	// DefaultSessionTimeout bounds one fetch-and-export flow. It exceeds
	// the Wordstat report wait budget (60 seconds) so the poll loop, not
	// this timeout, decides when a slow report fails.
	DefaultSessionTimeout = 90 * time.Second

	// DefaultConcurrency is the maximum number of chat updates handled
	// simultaneously. Sessions are independent, so this only bounds
	// resource usage, not correctness.
	DefaultConcurrency = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "keywordstat"
)

// Config holds all runtime settings for keywordstat.
type Config struct {
	// BotToken is the Telegram bot credential. Required to run the bot;
	// unused by the headless fetch command.
	BotToken string

	// OAuthToken is the Yandex OAuth credential for the Wordstat API.
	// When empty the offline provider is selected.
	OAuthToken string

	// ClientLogin is the optional Client-Login header value for agency
	// Wordstat accounts.
	ClientLogin string

	// MaxKeywords bounds the number of unique phrases per request.
	MaxKeywords int

	// SessionTimeout bounds one fetch-and-export flow per user.
	SessionTimeout time.Duration

	// Concurrency is the maximum number of simultaneously handled
	// chat updates.
	Concurrency int

	// ConfigFilePath is an explicitly requested config file, if any.
	ConfigFilePath string
}

// NewConfig returns a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		MaxKeywords:    DefaultMaxKeywords,
		SessionTimeout: DefaultSessionTimeout,
		Concurrency:    DefaultConcurrency,
	}
}

// Validate checks the settings every command needs. It does not require
// credentials; use ValidateBot for the bot process.
func (c *Config) Validate() error {
	if c.MaxKeywords <= 0 {
		return ErrInvalidMaxKeywords
	}
	if c.SessionTimeout <= 0 {
		return ErrInvalidSessionTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// ValidateBot checks everything Validate does plus the settings the bot
// process requires. A missing bot token is a hard startup failure.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.BotToken == "" {
		return ErrMissingBotToken
	}
	return nil
}

// UseOffline reports whether the offline provider should be selected.
// The remote provider needs an OAuth token; without one the bot still
// works, serving deterministic offline data.
func (c *Config) UseOffline() bool {
	return c.OAuthToken == ""
}
