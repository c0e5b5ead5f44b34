package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/skykit/internal/common"
	"github.com/dmitrijs2005/skykit/internal/ratelimit"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the skykit CLI.
type Config struct {
	Service   string
	ChatProxy string

	// Identifier and Password, when both set, log in without prompting.
	Identifier string
	Password   string

	Langs          []string
	DetectLanguage bool

	RateLimit         int
	RateLimitInterval time.Duration
	RequestTimeout    time.Duration

	SessionDB string
	LogLevel  string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.Service = common.DefaultService
	c.ChatProxy = common.DefaultChatProxy
	c.RateLimit = ratelimit.DefaultCapacity
	c.RateLimitInterval = ratelimit.DefaultInterval
	c.RequestTimeout = 30 * time.Second
	c.SessionDB = "skykit.db"
	c.LogLevel = "info"
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: service must be an http(s) URL, got %q", ErrInvalidConfig, c.Service)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: rate limit must be positive, got %d", ErrInvalidConfig, c.RateLimit)
	}
	if c.RateLimitInterval <= 0 {
		return fmt.Errorf("%w: rate limit interval must be positive, got %s", ErrInvalidConfig, c.RateLimitInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file named in args,
// then environ (KEY=VALUE pairs), then flags in args.
func Load(args, environ []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Environ())
}
