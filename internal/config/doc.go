// Package config loads Stockroom's service endpoints and runtime settings.
//
// # Resolution Order
//
//  1. Defaults
//  2. The TOML file (explicit path, else ~/.config/stockroom/config.toml);
//     a missing file is not an error
//  3. A .env file in the working directory, exported without overriding
//     variables already set
//  4. STOCKROOM_INVENTORY_URL, STOCKROOM_LOOKUP_URL, STOCKROOM_DEFAULT_SHELF
//
// # TOML Format
//
//	inventory_url   = "http://127.0.0.1:8000"
//	lookup_url      = "https://upc.skystuff.cc/api/"
//	default_shelf   = "backroom"
//	request_timeout = "10s"
//	log_dir         = "~/.local/share/stockroom"
//
// Every field is optional; blank values keep the default. Tilde paths are
// expanded.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, TOML
// syntax errors, an unparseable or non-positive request_timeout, and a
// malformed .env file.
package config
