package models

// Change classification assigned by the external ingestion pipeline.
const (
	ChangeTypeNew       = "NEW"
	ChangeTypePriceDrop = "PRICE_DROP"
	ChangeTypePriceUp   = "PRICE_UP"
)

// Listing mirrors a row of the listings table. The table is owned and
// mutated by the scraper; this service only reads it. Numeric columns are
// nullable upstream, hence the pointers.
type Listing struct {
	ListingID    string   `json:"listing_id"`
	PropertyType string   `json:"property_type"`
	SquareMeters *float64 `json:"square_meters"`
	Area         string   `json:"area"`
	Price        *float64 `json:"price"`
	// PriceChange is the signed delta against the previously recorded
	// price, negative for drops.
	PriceChange   *float64 `json:"price_change"`
	ChangeType    string   `json:"change_type"`
	FirstSeenDate string   `json:"first_seen_date"`
	LastSeenDate  string   `json:"last_seen_date"`
}
