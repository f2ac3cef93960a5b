// Package config loads Lamplight API credentials and CLI settings.
//
// # Resolution Order
//
// Values are applied in this order, later sources winning:
//
//  1. Built-in defaults
//  2. The TOML config file (explicit path, else ~/.config/lamplight/config.toml)
//  3. A .env file in the same directory as the config file
//  4. The process environment
//
// A missing config file or .env file is not an error.
//
// # TOML Format
//
//	base_url = "https://lamplight.online/api/"
//	key = "..."
//	lampid = 12
//	project = 1
//	timeout_seconds = 30
//	log_level = "warn"
//	log_file = "~/.local/state/lamplight/lamplight.log"
//
// Every field is optional. log_file is tilde-expanded; an empty log_file means
// stderr.
//
// # Environment
//
//   - LAMPLIGHT_KEY: API key
//   - LAMPLIGHT_ID: lampid (organisation id)
//   - LAMPLIGHT_PROJECT: project number
//   - LAMPLIGHT_BASE_URL: API root, for the sandbox or a proxy
//
// The .env file uses the same names. It is read without modifying the process
// environment.
//
// # Validation
//
// Load does not require credentials, so commands that never reach the API can
// still run. Validate reports which of key, lampid and project are missing,
// wrapping ErrMissingCredentials.
package config
