package repository

import (
	"context"
	"time"

	"estate-notifier-backend/internal/features/digest/models"
)

type ListingRepository interface {
	// NewListings returns listings first seen after since, most expensive
	// first.
	NewListings(ctx context.Context, since time.Time, limit int) ([]models.Listing, error)
	// PriceDrops returns recent price decreases, deepest cut first.
	PriceDrops(ctx context.Context, since time.Time, limit int) ([]models.Listing, error)
	// PriceUps returns recent price increases, steepest rise first.
	PriceUps(ctx context.Context, since time.Time, limit int) ([]models.Listing, error)
	// Ping is a minimal read used by the health probe.
	Ping(ctx context.Context) error
}
