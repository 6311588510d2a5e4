package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"estate-notifier-backend/internal/features/digest/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display caps per category; anything past them collapses into an
// "...και N ακόμη" overflow line.
const (
	displayNew   = 10
	displayDrops = 8
	displayUps   = 5
)

var propertyEmoji = map[string]string{
	"Διαμέρισμα":   "🏢",
	"Μονοκατοικία": "🏡",
	"Μεζονέτα":     "🏘️",
	"Γραφείο":      "🏢",
	"Κατάστημα":    "🏪",
	"Γκαρσονιέρα":  "🏠",
	"οικία":        "🏡",
	"Βίλα":         "🏠",
}

const defaultEmoji = "🏠"

// greekPrinter groups thousands the el-GR way (110000 -> "110.000").
var greekPrinter = message.NewPrinter(language.Greek)

func emoji(propertyType string) string {
	if e, ok := propertyEmoji[propertyType]; ok {
		return e
	}
	return defaultEmoji
}

func formatPrice(price *float64) string {
	if price == nil {
		return "N/A"
	}
	return greekPrinter.Sprintf("%d", int64(math.Round(*price))) + "€"
}

// priorPrice reconstructs the price before the recorded change.
func priorPrice(l models.Listing) *float64 {
	if l.Price == nil {
		return nil
	}
	var change float64
	if l.PriceChange != nil {
		change = *l.PriceChange
	}
	prior := *l.Price - change
	return &prior
}

// changePercent renders the change relative to the prior price, or "?" when
// the prior price is not positive and the ratio is meaningless.
func changePercent(l models.Listing) string {
	prior := priorPrice(l)
	if prior == nil || *prior <= 0 || l.PriceChange == nil {
		return "?"
	}
	return strconv.FormatFloat(math.Abs(*l.PriceChange)/(*prior)*100, 'f', 1, 64)
}

func formatSquareMeters(l models.Listing) string {
	if l.SquareMeters == nil || *l.SquareMeters == 0 {
		return ""
	}
	return " " + strconv.FormatFloat(*l.SquareMeters, 'f', -1, 64) + "τμ"
}

func newListingLine(l models.Listing) string {
	return fmt.Sprintf("• %s %s%s — %s — %s",
		emoji(l.PropertyType), l.PropertyType, formatSquareMeters(l), formatPrice(l.Price), l.Area)
}

func priceChangeLine(l models.Listing, sign string) string {
	return fmt.Sprintf("• %s %s %s: %s → %s (%s%s%%)",
		emoji(l.PropertyType), l.PropertyType, l.Area,
		formatPrice(priorPrice(l)), formatPrice(l.Price), sign, changePercent(l))
}

func appendSection(b *strings.Builder, header string, listings []models.Listing, limit int, line func(models.Listing) string) {
	if len(listings) == 0 {
		return
	}
	b.WriteString(header)
	shown := listings
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for i, l := range shown {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line(l))
	}
	if len(listings) > limit {
		fmt.Fprintf(b, "\n  ...και %d ακόμη", len(listings)-limit)
	}
	b.WriteString("\n\n")
}

func buildDigest(hours int, newListings, drops, ups []models.Listing, appURL string) string {
	var b strings.Builder

	b.WriteString("🏠 <b>Greecing Real Estate — Ενημέρωση</b>\n")
	fmt.Fprintf(&b, "📅 Τελευταίες %d ώρες\n\n", hours)

	appendSection(&b, fmt.Sprintf("📢 <b>%d νέες αγγελίες:</b>\n", len(newListings)),
		newListings, displayNew, newListingLine)
	appendSection(&b, fmt.Sprintf("📉 <b>%d μειώσεις τιμών:</b>\n", len(drops)),
		drops, displayDrops, func(l models.Listing) string { return priceChangeLine(l, "-") })
	appendSection(&b, fmt.Sprintf("📈 <b>%d αυξήσεις τιμών:</b>\n", len(ups)),
		ups, displayUps, func(l models.Listing) string { return priceChangeLine(l, "+") })

	if appURL != "" {
		fmt.Fprintf(&b, "🔗 <a href=\"%s\">Άνοιξε την εφαρμογή</a>", appURL)
	}

	return b.String()
}
