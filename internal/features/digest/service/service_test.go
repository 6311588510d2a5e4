package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"estate-notifier-backend/internal/features/digest/models"
	"estate-notifier-backend/internal/platform/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListingRepo struct {
	newListings []models.Listing
	drops       []models.Listing
	ups         []models.Listing

	newErr   error
	dropsErr error
	upsErr   error

	sinceSeen []time.Time
}

func (r *fakeListingRepo) NewListings(_ context.Context, since time.Time, _ int) ([]models.Listing, error) {
	r.sinceSeen = append(r.sinceSeen, since)
	return r.newListings, r.newErr
}

func (r *fakeListingRepo) PriceDrops(_ context.Context, since time.Time, _ int) ([]models.Listing, error) {
	r.sinceSeen = append(r.sinceSeen, since)
	return r.drops, r.dropsErr
}

func (r *fakeListingRepo) PriceUps(_ context.Context, since time.Time, _ int) ([]models.Listing, error) {
	r.sinceSeen = append(r.sinceSeen, since)
	return r.ups, r.upsErr
}

func (r *fakeListingRepo) Ping(_ context.Context) error { return nil }

type fakeSender struct {
	sendErr error
	sent    []telegram.SendMessageParams
}

func (s *fakeSender) SendMessage(_ context.Context, p telegram.SendMessageParams) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, p)
	return nil
}

func newDigest(repo *fakeListingRepo, bot *fakeSender) *digestService {
	svc := NewDigestService(repo, bot, "100200300", 6, "").(*digestService)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestRun_ZeroActivitySendsNothing(t *testing.T) {
	repo := &fakeListingRepo{}
	bot := &fakeSender{}

	report, err := newDigest(repo, bot).Run(context.Background())

	require.NoError(t, err)
	assert.False(t, report.Sent)
	assert.Equal(t, 0, report.New)
	assert.Equal(t, 0, report.Drops)
	assert.Equal(t, 0, report.Ups)
	assert.Empty(t, bot.sent, "empty digest must not be sent")
}

func TestRun_TrailingWindow(t *testing.T) {
	repo := &fakeListingRepo{}
	bot := &fakeSender{}

	report, err := newDigest(repo, bot).Run(context.Background())

	require.NoError(t, err)
	want := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, want, report.CheckedSince)
	require.Len(t, repo.sinceSeen, 3, "all three categories are queried")
	for _, since := range repo.sinceSeen {
		assert.Equal(t, want, since)
	}
}

func TestRun_SendsDigestWithCounts(t *testing.T) {
	repo := &fakeListingRepo{
		newListings: []models.Listing{{PropertyType: "Διαμέρισμα", Price: fp(250000), Area: "Γλυφάδα"}},
		drops:       []models.Listing{{PropertyType: "Βίλα", Price: fp(90000), PriceChange: fp(-10000), Area: "Βούλα"}},
	}
	bot := &fakeSender{}

	report, err := newDigest(repo, bot).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Sent)
	assert.Equal(t, 1, report.New)
	assert.Equal(t, 1, report.Drops)
	assert.Equal(t, 0, report.Ups)

	require.Len(t, bot.sent, 1)
	msg := bot.sent[0]
	assert.Equal(t, "100200300", msg.ChatID)
	assert.Equal(t, "HTML", msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)
	assert.Contains(t, msg.Text, "1 νέες αγγελίες")
	assert.Contains(t, msg.Text, "1 μειώσεις τιμών")
}

func TestRun_QueryFailureAbortsRun(t *testing.T) {
	repo := &fakeListingRepo{dropsErr: errors.New("supabase request failed with status 500: boom")}
	bot := &fakeSender{}

	_, err := newDigest(repo, bot).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query price drops")
	assert.Empty(t, bot.sent, "no partial delivery on query failure")
}

func TestRun_SendFailureSurfaces(t *testing.T) {
	repo := &fakeListingRepo{newListings: []models.Listing{{Price: fp(1000)}}}
	bot := &fakeSender{sendErr: errors.New("telegram request failed with status 400: Bad Request")}

	_, err := newDigest(repo, bot).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "send digest")
}
