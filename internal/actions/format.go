package actions

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateTimeLayout = "02 Jan 2006, 15:04"
	dateLayout     = "02 Jan 2006"
)

// rupiah renders a money amount the way the storefront shows it:
// "Rp 25,000", fractions dropped.
func rupiah(amount decimal.Decimal) string {
	digits := amount.Truncate(0).String()
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "Rp -" + b.String()
	}
	return "Rp " + b.String()
}

// stars renders n filled star emoji.
func stars(n int) string {
	return strings.Repeat("⭐", n)
}

// ratingDisplay renders an average rating, or the no-rating phrase when the
// product has none. nil is the only "no rating" signal; 0.0 never is.
func ratingDisplay(avg *float64) string {
	if avg == nil {
		return "Belum ada rating"
	}
	return fmt.Sprintf("⭐ %.1f", *avg)
}

func formatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
