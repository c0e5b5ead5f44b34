package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/skykit/internal/flagx"
	"github.com/dmitrijs2005/skykit/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent fields leave the
// current value alone.
type JsonConfig struct {
	Service           *string         `json:"service"`
	ChatProxy         *string         `json:"chat_proxy"`
	Identifier        *string         `json:"identifier"`
	Langs             []string        `json:"langs"`
	DetectLanguage    *bool           `json:"detect_language"`
	RateLimit         *int            `json:"rate_limit"`
	RateLimitInterval *timex.Duration `json:"rate_limit_interval"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	SessionDB         *string         `json:"session_db"`
	LogLevel          *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config in args. No flag
// means no file.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	setIf(&cfg.Service, jc.Service)
	setIf(&cfg.ChatProxy, jc.ChatProxy)
	setIf(&cfg.Identifier, jc.Identifier)
	setIf(&cfg.DetectLanguage, jc.DetectLanguage)
	setIf(&cfg.RateLimit, jc.RateLimit)
	setIf(&cfg.SessionDB, jc.SessionDB)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.Langs != nil {
		cfg.Langs = jc.Langs
	}
	if jc.RateLimitInterval != nil {
		cfg.RateLimitInterval = jc.RateLimitInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
