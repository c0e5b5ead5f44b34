package config

import (
	"fmt"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/dmitrijs2005/skykit/internal/flagx"
)

// envConfig lists the SKYKIT_* variables. Unset variables leave the
// current value alone.
type envConfig struct {
	Service           *string `env:"SKYKIT_SERVICE"`
	ChatProxy         *string `env:"SKYKIT_CHAT_PROXY"`
	Identifier        *string `env:"SKYKIT_IDENTIFIER"`
	Password          *string `env:"SKYKIT_PASSWORD"`
	Langs             *string `env:"SKYKIT_LANGS"`
	DetectLanguage    *bool   `env:"SKYKIT_DETECT_LANGUAGE"`
	RateLimit         *int    `env:"SKYKIT_RATE_LIMIT"`
	RateLimitInterval *string `env:"SKYKIT_RATE_LIMIT_INTERVAL"`
	RequestTimeout    *string `env:"SKYKIT_REQUEST_TIMEOUT"`
	SessionDB         *string `env:"SKYKIT_SESSION_DB"`
	LogLevel          *string `env:"SKYKIT_LOG_LEVEL"`
}

func parseEnv(cfg *Config, environ []string) error {
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	var ec envConfig
	if err := env.Unmarshal(es, &ec); err != nil {
		return fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	setIf(&cfg.Service, ec.Service)
	setIf(&cfg.ChatProxy, ec.ChatProxy)
	setIf(&cfg.Identifier, ec.Identifier)
	setIf(&cfg.Password, ec.Password)
	setIf(&cfg.DetectLanguage, ec.DetectLanguage)
	setIf(&cfg.RateLimit, ec.RateLimit)
	setIf(&cfg.SessionDB, ec.SessionDB)
	setIf(&cfg.LogLevel, ec.LogLevel)
	if ec.Langs != nil {
		cfg.Langs = flagx.SplitList(*ec.Langs)
	}
	if err := setDuration(&cfg.RateLimitInterval, ec.RateLimitInterval, "SKYKIT_RATE_LIMIT_INTERVAL"); err != nil {
		return err
	}
	return setDuration(&cfg.RequestTimeout, ec.RequestTimeout, "SKYKIT_REQUEST_TIMEOUT")
}

func setDuration(dst *time.Duration, src *string, name string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}
	*dst = d
	return nil
}
