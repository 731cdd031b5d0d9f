package domain

import "fmt"

// Product is a catalog entry. Products are loaded once from the embedded
// fixture at startup and never mutated afterwards.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PriceCents  int64   `json:"price_cents"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	InStock     bool    `json:"in_stock"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
}

// FormatCents renders an integer-cents amount as a dollar string, e.g.
// 1999 -> "$19.99". All money in this service is integer cents; this is the
// only place an amount becomes a decimal string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
