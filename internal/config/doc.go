// Package config loads lexicon's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lexicon/config.toml
//  3. If the file doesn't exist, fall back to Default
//  4. If the file exists but fields are missing or blank, use their defaults
//
// # TOML Format
//
//	store_addr = "127.0.0.1:7490"          # where the TUI and CLI reach the store
//	listen = "127.0.0.1:7490"              # where `lexicon serve` listens
//	db_path = "~/.local/share/lexicon/lexicon.db"
//	collection = "words"
//	subscribe_delay_ms = 600
//	rollback_delay_ms = 300
//	retry_interval_ms = 2000
//	locale = "en"                          # BCP 47 tag used to sort names
//
// Every field is optional. Tilde expansion is applied to db_path, and the
// special value ":memory:" is passed through untouched. A zero subscribe delay
// subscribes at once; a negative delay is a parse error.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and TOML
// parse errors. A missing file is not an error.
package config
