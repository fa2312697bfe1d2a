package domain

import "github.com/shopspring/decimal"

const shortDescriptionLen = 100

type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Store       string
	Rating      float64
	Image       string
	Description string
}

// ShortDescription returns the first 100 runes of the description followed by "...".
func (p Product) ShortDescription() string {
	runes := []rune(p.Description)
	if len(runes) > shortDescriptionLen {
		runes = runes[:shortDescriptionLen]
	}
	return string(runes) + "..."
}
