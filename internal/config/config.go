package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken      string        `env:"TELEGRAM_BOT_TOKEN,required,notEmpty"`
	TelegramDebug      bool          `env:"TELEGRAM_DEBUG" envDefault:"false"`
	AdminIDs           []int64       `env:"TELEGRAM_ADMIN_IDS" envSeparator:","`
	APIBaseURL         string        `env:"NODE_API_URL" envDefault:"http://localhost:3000"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	BridgePort         int           `env:"BRIDGE_PORT" envDefault:"3001"`
	BridgePublicURL    string        `env:"BRIDGE_PUBLIC_URL"`
	SupportContact     string        `env:"SUPPORT_CONTACT" envDefault:"@Nova_king0"`
	RegisterMaxElapsed time.Duration `env:"REGISTER_MAX_ELAPSED" envDefault:"1m"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB" envDefault:"0"`
	RedisTTL           time.Duration `env:"REDIS_TTL" envDefault:"24h"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BridgePort <= 0 || c.BridgePort > 65535 {
		return fmt.Errorf("invalid BRIDGE_PORT %d", c.BridgePort)
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.APIBaseURL == "" {
		return fmt.Errorf("NODE_API_URL must not be empty")
	}
	if c.BridgePublicURL == "" {
		c.BridgePublicURL = fmt.Sprintf("http://localhost:%d", c.BridgePort)
	}
	return nil
}

// AdminSet returns the admin allow-list as a lookup set.
func (c *Config) AdminSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(c.AdminIDs))
	for _, id := range c.AdminIDs {
		set[id] = struct{}{}
	}
	return set
}

// BridgeAddr is the listen address of the webhook bridge.
func (c *Config) BridgeAddr() string {
	return fmt.Sprintf(":%d", c.BridgePort)
}
