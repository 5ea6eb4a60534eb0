// Package main provides the entry point for the keywordstat CLI.
//
// Keywordstat is a Telegram bot that collects keyword phrases from users,
// fetches search-volume statistics from Yandex Wordstat (or generates
// deterministic offline data when no OAuth token is configured), and
// replies with an Excel spreadsheet.
//
// Usage:
//
//	keywordstat run
//	keywordstat fetch "купить iphone" "ноутбук цена"
//
// See --help for all available options.
package main

// main is the entry point for keywordstat.
func main() {
	Execute()
}
