package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config carries everything the handlers need. It is loaded once in main and
// injected; no package reads the environment at request time.
//
// Supabase and Telegram credentials are deliberately not marked required:
// the service starts degraded without them and the health endpoint reports
// which ones are missing. Each handler validates its own prerequisites before
// making any external call.
type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	Supabase struct {
		URL string `env:"SUPABASE_URL"`
		Key string `env:"SUPABASE_KEY"`
	}

	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`
		// AdminChatID is both the broadcast chat for digests and the only
		// identity allowed to approve or reject users.
		AdminChatID string `env:"TELEGRAM_CHAT_ID"`
		// InitDataTTL is the mini-app init-data expiry in seconds,
		// 0 disables the expiration check.
		InitDataTTL int `env:"INIT_DATA_TTL" envDefault:"0"`
	}

	Notify struct {
		// CronSecret gates /api/notify. Empty disables the gate.
		CronSecret string `env:"CRON_SECRET"`
		// IntervalHours is the trailing window for digest queries.
		IntervalHours int `env:"NOTIFY_INTERVAL_HOURS" envDefault:"6"`
		// AppURL, when set, is appended to the digest as a mini-app link.
		AppURL string `env:"APP_URL"`
	}
}

func Load() (*Config, error) {
	// .env is optional; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.Notify.IntervalHours <= 0 {
		cfg.Notify.IntervalHours = 6
	}
	return cfg, nil
}

// HasSupabase reports whether the PostgREST credentials are configured.
func (c *Config) HasSupabase() bool {
	return c.Supabase.URL != "" && c.Supabase.Key != ""
}

// HasTelegram reports whether the bot token and admin chat are configured.
func (c *Config) HasTelegram() bool {
	return c.Telegram.BotToken != "" && c.Telegram.AdminChatID != ""
}
