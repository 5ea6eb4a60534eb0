// Package config manages keywordstat configuration.
//
// Configuration comes from three layers, later layers overriding earlier
// ones:
//
//  1. Built-in defaults (the constants in this package)
//  2. An optional YAML file (.keywordstat), discovered in the current
//     directory or the XDG config home
//  3. Environment variables (TELEGRAM_BOT_TOKEN, YANDEX_OAUTH_TOKEN,
//     YANDEX_CLIENT_LOGIN, MAX_KEYWORDS)
//
// Credentials are expected via environment variables; the YAML file is for
// the non-secret knobs. The Telegram bot token is required to run the bot,
// while the Wordstat OAuth token is optional: its absence selects the
// offline data provider automatically.
package config
