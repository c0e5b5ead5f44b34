package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/skykit/internal/flagx"
)

var knownFlags = []string{
	"-s", "-u", "-langs", "-detect-lang",
	"-rate", "-rate-interval", "-timeout", "-db", "-log-level",
}

// parseFlags overlays cfg with the flags it knows about; other flags in
// args are ignored.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(expandBoolFlags(args), knownFlags)

	fs := flag.NewFlagSet("skykit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Service, "s", cfg.Service, "service (PDS) base URL")
	fs.StringVar(&cfg.Identifier, "u", cfg.Identifier, "login identifier")
	langs := fs.String("langs", strings.Join(cfg.Langs, ","), "comma separated default post languages")
	fs.BoolVar(&cfg.DetectLanguage, "detect-lang", cfg.DetectLanguage, "tag posts with their detected language")
	fs.IntVar(&cfg.RateLimit, "rate", cfg.RateLimit, "rate limit tokens per interval")
	fs.DurationVar(&cfg.RateLimitInterval, "rate-interval", cfg.RateLimitInterval, "rate limit refill interval")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per request timeout")
	fs.StringVar(&cfg.SessionDB, "db", cfg.SessionDB, "SQLite file for the saved session")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Langs = flagx.SplitList(*langs)
	return nil
}

// expandBoolFlags rewrites a bare -detect-lang as -detect-lang=true so that
// FilterArgs does not take the following argument as its value.
func expandBoolFlags(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-detect-lang" || a == "--detect-lang" {
			a = "-detect-lang=true"
		}
		out[i] = a
	}
	return out
}
