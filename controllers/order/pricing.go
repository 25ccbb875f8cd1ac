package orderControllers

import (
	"math"
	"os"
	"strconv"
)

const (
	// Orders at or above the threshold ship free, below it a flat fee applies.
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 50.0
)

type Pricing struct {
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	ShippingCost float64 `json:"shipping_cost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

func ShippingCost(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// ComputePricing derives the full breakdown from the subtotal. Tax is a fixed
// percentage of the subtotal, floored to whole currency units.
func ComputePricing(subtotal, discount, taxPercent float64) Pricing {
	shipping := ShippingCost(subtotal)
	tax := math.Floor(subtotal * taxPercent / 100)
	return Pricing{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal - discount + shipping + tax,
	}
}

// TaxPercent reads the configured tax rate. Unset or malformed means no tax.
func TaxPercent() float64 {
	raw := os.Getenv("TAX_PERCENT")
	if raw == "" {
		return 0
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil || pct < 0 {
		return 0
	}
	return pct
}
