// Package config loads spaggo's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/spaggo/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply a .env file from the working directory and SPAGGO_* variables
//
// # Default Values
//
//   - Config file: ~/.config/spaggo/config.toml
//   - API base: https://web.spaggiari.eu/rest/v1
//   - Token file: ~/.config/spaggo/credentials.json
//   - Re-logins per request: 1
//   - Table wrap width: 30
//   - Table theme: Nightfox (also Kanagawa, Slate)
//   - HTTP timeout: 15s
//   - Log level: warn
//   - Watch schedule: every 30 minutes
//
// # TOML Format
//
//	base_url = "https://web.spaggiari.eu/rest/v1"
//	token_path = "~/.config/spaggo/credentials.json"
//	max_relogins = 1
//
//	[credentials]
//	username = "S1234567X"
//	password = "secret"
//
//	[[headers]]
//	key = "User-Agent"
//	value = "CVVS/std/4.1.7 Android/10"
//
//	[display]
//	wrap_width = 30
//	theme = "Nightfox"
//
//	[http]
//	timeout = "15s"
//
//	[log]
//	level = "warn"
//	file = "~/.local/state/spaggo/spaggo.log"
//
//	[watch]
//	schedule = "*/30 * * * *"
//
// Declaring any [[headers]] replaces the default header set entirely.
//
// # Environment
//
// SPAGGO_USERNAME, SPAGGO_PASSWORD and SPAGGO_LOG_LEVEL override the file.
// A .env file is loaded first but never overrides variables already set.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Invalid values (negative max_relogins, unparseable http.timeout)
//
// Missing credentials are not a load error; Validate reports them when a
// command actually needs to log in.
package config
