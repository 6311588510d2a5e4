package service

import (
	"context"
	"time"

	"estate-notifier-backend/internal/common/config"
	"estate-notifier-backend/internal/platform/telegram"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Pinger is a minimal connectivity probe against the listings store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BotProbe is the bot API identity call.
type BotProbe interface {
	GetMe(ctx context.Context) (*telegram.User, error)
}

// Report aggregates config presence and probe results. Probe errors are
// captured as strings; the health check itself never fails.
type Report struct {
	Status            string    `json:"status"`
	SupabaseURL       bool      `json:"supabase_url"`
	SupabaseKey       bool      `json:"supabase_key"`
	TelegramBot       bool      `json:"telegram_bot"`
	TelegramChat      bool      `json:"telegram_chat"`
	Timestamp         time.Time `json:"timestamp"`
	SupabaseConnected bool      `json:"supabase_connected"`
	SupabaseError     string    `json:"supabase_error,omitempty"`
	TelegramConnected bool      `json:"telegram_connected"`
	TelegramBotName   string    `json:"telegram_bot_name,omitempty"`
	TelegramError     string    `json:"telegram_error,omitempty"`
}

func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

type HealthService interface {
	Check(ctx context.Context) *Report
}

type healthService struct {
	cfg      *config.Config
	listings Pinger
	bot      BotProbe
}

func NewHealthService(cfg *config.Config, listings Pinger, bot BotProbe) HealthService {
	return &healthService{
		cfg:      cfg,
		listings: listings,
		bot:      bot,
	}
}

// Check reports secret presence and probes both upstreams independently.
// Healthy requires both probes to pass; missing credentials skip the probe
// and count as not connected.
func (s *healthService) Check(ctx context.Context) *Report {
	report := &Report{
		SupabaseURL:  s.cfg.Supabase.URL != "",
		SupabaseKey:  s.cfg.Supabase.Key != "",
		TelegramBot:  s.cfg.Telegram.BotToken != "",
		TelegramChat: s.cfg.Telegram.AdminChatID != "",
		Timestamp:    time.Now().UTC(),
	}

	if s.cfg.HasSupabase() {
		if err := s.listings.Ping(ctx); err != nil {
			report.SupabaseError = err.Error()
		} else {
			report.SupabaseConnected = true
		}
	}

	if s.cfg.Telegram.BotToken != "" {
		if me, err := s.bot.GetMe(ctx); err != nil {
			report.TelegramError = err.Error()
		} else {
			report.TelegramConnected = true
			report.TelegramBotName = me.Username
		}
	}

	report.Status = StatusDegraded
	if report.SupabaseConnected && report.TelegramConnected {
		report.Status = StatusHealthy
	}
	return report
}
