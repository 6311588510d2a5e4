package service

import (
	"fmt"
	"strings"
	"testing"

	"estate-notifier-backend/internal/features/digest/models"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "110.000€", formatPrice(fp(110000)))
	assert.Equal(t, "950€", formatPrice(fp(950)))
	assert.Equal(t, "1.250.000€", formatPrice(fp(1250000)))
	assert.Equal(t, "100.000€", formatPrice(fp(99999.6)), "prices round to the nearest unit")
	assert.Equal(t, "N/A", formatPrice(nil))
}

func TestChangePercent(t *testing.T) {
	// 100000 with a recorded -10000 change reconstructs a 110000 prior
	// price: 10000/110000 = 9.1%.
	drop := models.Listing{Price: fp(100000), PriceChange: fp(-10000)}
	assert.Equal(t, "9.1", changePercent(drop))

	up := models.Listing{Price: fp(120000), PriceChange: fp(20000)}
	assert.Equal(t, "20.0", changePercent(up))

	// Reconstructed prior price <= 0 must render "?" instead of dividing.
	degenerate := models.Listing{Price: fp(100), PriceChange: fp(200)}
	assert.Equal(t, "?", changePercent(degenerate))

	noPrice := models.Listing{PriceChange: fp(-10000)}
	assert.Equal(t, "?", changePercent(noPrice))
}

func TestNewListingLine(t *testing.T) {
	l := models.Listing{
		PropertyType: "Διαμέρισμα",
		SquareMeters: fp(85),
		Area:         "Γλυφάδα",
		Price:        fp(250000),
	}
	assert.Equal(t, "• 🏢 Διαμέρισμα 85τμ — 250.000€ — Γλυφάδα", newListingLine(l))

	unmapped := models.Listing{PropertyType: "Αγροτεμάχιο", Price: fp(50000), Area: "Μέγαρα"}
	assert.Equal(t, "• 🏠 Αγροτεμάχιο — 50.000€ — Μέγαρα", newListingLine(unmapped))
}

func TestPriceChangeLine(t *testing.T) {
	l := models.Listing{
		PropertyType: "Μονοκατοικία",
		Area:         "Κηφισιά",
		Price:        fp(100000),
		PriceChange:  fp(-10000),
	}
	assert.Equal(t, "• 🏡 Μονοκατοικία Κηφισιά: 110.000€ → 100.000€ (-9.1%)", priceChangeLine(l, "-"))
}

func TestBuildDigest_Overflow(t *testing.T) {
	var listings []models.Listing
	for i := 0; i < 25; i++ {
		listings = append(listings, models.Listing{
			PropertyType: "Διαμέρισμα",
			Area:         fmt.Sprintf("Περιοχή %d", i),
			Price:        fp(100000),
		})
	}

	msg := buildDigest(6, listings, nil, nil, "")

	assert.Contains(t, msg, "25 νέες αγγελίες")
	assert.Equal(t, 10, strings.Count(msg, "• "), "only the display cap is rendered")
	assert.Contains(t, msg, "...και 15 ακόμη")
	assert.NotContains(t, msg, "μειώσεις", "empty categories are omitted")
	assert.NotContains(t, msg, "αυξήσεις")
}

func TestBuildDigest_AppLink(t *testing.T) {
	listings := []models.Listing{{PropertyType: "Βίλα", Price: fp(900000), Area: "Βούλα"}}

	withLink := buildDigest(6, listings, nil, nil, "https://example.com/app")
	assert.Contains(t, withLink, `<a href="https://example.com/app">Άνοιξε την εφαρμογή</a>`)

	withoutLink := buildDigest(6, listings, nil, nil, "")
	assert.NotContains(t, withoutLink, "<a href=")
}

func TestBuildDigest_Header(t *testing.T) {
	msg := buildDigest(12, []models.Listing{{Price: fp(1)}}, nil, nil, "")
	assert.Contains(t, msg, "Greecing Real Estate — Ενημέρωση")
	assert.Contains(t, msg, "Τελευταίες 12 ώρες")
}
