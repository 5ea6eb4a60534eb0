// Package log provides logging with automatic redaction of credentials,
// built on top of the standard slog package.
//
// keywordstat handles two long-lived secrets, the Telegram bot token and
// the Yandex OAuth token, and both tend to leak into logs through request
// dumps and error messages. The SecureHandler masks attribute values whose
// key names or value shapes look credential-like:
//   - Header-style keys (Authorization, Client-Login, Cookie)
//   - Key names containing "token", "secret", "password", and similar
//   - Telegram bot tokens ("<digits>:<35 url-safe chars>")
//   - Yandex OAuth tokens ("y0_..." and the older 39-char format)
//   - Bearer/Basic authorization values and JWTs
//
// Even in verbose mode, masked values stay masked: debug logs of API
// traffic must be safe to paste into an issue tracker.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
