package domain

import "github.com/shopspring/decimal"

var (
	thresholdFactor = decimal.RequireFromString("0.9")
	baselineFactor  = decimal.RequireFromString("1.1")
)

type PriceTrend string

const (
	PriceTrendDecreased PriceTrend = "decreased"
	PriceTrendIncreased PriceTrend = "increased"
	PriceTrendUnchanged PriceTrend = "unchanged"
)

type PriceAlert struct {
	ProductID     int64
	Threshold     decimal.Decimal
	CurrentPrice  decimal.Decimal
	PreviousPrice decimal.Decimal // synthetic baseline, not a recorded price
}

// NewPriceAlert derives the alert for a product at its current catalog price.
func NewPriceAlert(p Product) PriceAlert {
	return PriceAlert{
		ProductID:     p.ID,
		Threshold:     p.Price.Mul(thresholdFactor),
		CurrentPrice:  p.Price,
		PreviousPrice: p.Price.Mul(baselineFactor),
	}
}

// RecomputeThreshold resets the threshold from the current price.
func (a *PriceAlert) RecomputeThreshold() {
	a.Threshold = a.CurrentPrice.Mul(thresholdFactor)
}

func (a PriceAlert) Delta() decimal.Decimal {
	return a.CurrentPrice.Sub(a.PreviousPrice)
}

func (a PriceAlert) Trend() PriceTrend {
	switch a.Delta().Sign() {
	case -1:
		return PriceTrendDecreased
	case 1:
		return PriceTrendIncreased
	default:
		return PriceTrendUnchanged
	}
}
