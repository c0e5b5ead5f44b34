// Package config loads runtime configuration for the skykit CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. SKYKIT_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string         service (PDS) base URL
//	-u string         login identifier (handle, DID or email)
//	-langs string     comma separated default post languages
//	-detect-lang      tag posts with their detected language
//	-rate int         rate limit tokens per interval
//	-rate-interval    rate limit refill interval, e.g. 300s
//	-db string        SQLite file for the saved session ("" disables it)
//	-log-level string debug, info, warn or error
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "300s" or
// integer nanoseconds:
//
//	{
//	  "service": "https://bsky.social",
//	  "langs": ["en"],
//	  "rate_limit": 3000,
//	  "rate_limit_interval": "300s",
//	  "session_db": "skykit.db"
//	}
//
// The password is never read from flags; use SKYKIT_PASSWORD or the
// interactive prompt.
package config
