package supabase

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"estate-notifier-backend/internal/features/digest/models"
	"estate-notifier-backend/internal/features/digest/repository"
	"estate-notifier-backend/internal/platform/supabase"
)

const listingsTable = "listings"

type listingRepository struct {
	client *supabase.Client
}

func NewListingRepository(client *supabase.Client) repository.ListingRepository {
	return &listingRepository{client: client}
}

func (r *listingRepository) NewListings(ctx context.Context, since time.Time, limit int) ([]models.Listing, error) {
	return r.query(ctx, models.ChangeTypeNew, "first_seen_date", since, "price.desc", limit)
}

func (r *listingRepository) PriceDrops(ctx context.Context, since time.Time, limit int) ([]models.Listing, error) {
	// Drops carry negative deltas, so ascending order puts the deepest cut
	// first.
	return r.query(ctx, models.ChangeTypePriceDrop, "last_seen_date", since, "price_change.asc", limit)
}

func (r *listingRepository) PriceUps(ctx context.Context, since time.Time, limit int) ([]models.Listing, error) {
	return r.query(ctx, models.ChangeTypePriceUp, "last_seen_date", since, "price_change.desc", limit)
}

func (r *listingRepository) query(ctx context.Context, changeType, seenField string, since time.Time, order string, limit int) ([]models.Listing, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("change_type", "eq."+changeType)
	q.Set(seenField, "gte."+since.UTC().Format(time.RFC3339))
	q.Set("order", order)
	q.Set("limit", strconv.Itoa(limit))

	var listings []models.Listing
	if err := r.client.Select(ctx, listingsTable, q, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", "listing_id")
	q.Set("limit", "1")

	var rows []struct {
		ListingID string `json:"listing_id"`
	}
	return r.client.Select(ctx, listingsTable, q, &rows)
}
