package service

import (
	"context"
	"fmt"
	"time"

	"estate-notifier-backend/internal/common/metrics"
	"estate-notifier-backend/internal/features/digest/repository"
	"estate-notifier-backend/internal/platform/telegram"
)

// Query caps per category. Wider than the display caps so the section
// counts and overflow lines reflect more than one screenful of activity.
const (
	queryNew   = 20
	queryDrops = 15
	queryUps   = 10
)

type TelegramGateway interface {
	SendMessage(ctx context.Context, params telegram.SendMessageParams) error
}

// Report is the outcome of one digest run. Sent is false when the trailing
// window held no activity and no message went out.
type Report struct {
	Sent         bool
	CheckedSince time.Time
	New          int
	Drops        int
	Ups          int
}

type DigestService interface {
	Run(ctx context.Context) (*Report, error)
}

type digestService struct {
	repo          repository.ListingRepository
	bot           TelegramGateway
	chatID        string
	intervalHours int
	appURL        string

	now func() time.Time
}

func NewDigestService(repo repository.ListingRepository, bot TelegramGateway, chatID string, intervalHours int, appURL string) DigestService {
	return &digestService{
		repo:          repo,
		bot:           bot,
		chatID:        chatID,
		intervalHours: intervalHours,
		appURL:        appURL,
		now:           time.Now,
	}
}

// Run queries the three change categories over the trailing window, builds
// the digest and sends it to the broadcast chat. Any query or send failure
// aborts the whole run; there is no partial delivery.
func (s *digestService) Run(ctx context.Context) (*Report, error) {
	since := s.now().UTC().Add(-time.Duration(s.intervalHours) * time.Hour)

	newListings, err := s.repo.NewListings(ctx, since, queryNew)
	if err != nil {
		metrics.IncDigest("failed")
		return nil, fmt.Errorf("query new listings: %w", err)
	}
	drops, err := s.repo.PriceDrops(ctx, since, queryDrops)
	if err != nil {
		metrics.IncDigest("failed")
		return nil, fmt.Errorf("query price drops: %w", err)
	}
	ups, err := s.repo.PriceUps(ctx, since, queryUps)
	if err != nil {
		metrics.IncDigest("failed")
		return nil, fmt.Errorf("query price ups: %w", err)
	}

	report := &Report{
		CheckedSince: since,
		New:          len(newListings),
		Drops:        len(drops),
		Ups:          len(ups),
	}

	if report.New == 0 && report.Drops == 0 && report.Ups == 0 {
		metrics.IncDigest("empty")
		return report, nil
	}

	err = s.bot.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:                s.chatID,
		Text:                  buildDigest(s.intervalHours, newListings, drops, ups, s.appURL),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		metrics.IncDigest("failed")
		return nil, fmt.Errorf("send digest: %w", err)
	}

	metrics.IncDigest("sent")
	report.Sent = true
	return report, nil
}
