package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingCostRule(t *testing.T) {
	assert.Equal(t, 50.0, ShippingCost(0))
	assert.Equal(t, 50.0, ShippingCost(499))
	assert.Equal(t, 0.0, ShippingCost(500))
	assert.Equal(t, 0.0, ShippingCost(897))
}

func TestComputePricingNoExtras(t *testing.T) {
	p := ComputePricing(498, 0, 0)
	assert.Equal(t, 498.0, p.Subtotal)
	assert.Equal(t, 50.0, p.ShippingCost)
	assert.Equal(t, 0.0, p.Tax)
	assert.Equal(t, 548.0, p.Total)
}

func TestComputePricingWithDiscount(t *testing.T) {
	// End-to-end arithmetic: subtotal 897, SAVE20 discount 179, free shipping.
	p := ComputePricing(897, 179, 0)
	assert.Equal(t, 0.0, p.ShippingCost)
	assert.Equal(t, 718.0, p.Total)
}

func TestComputePricingTaxFloored(t *testing.T) {
	p := ComputePricing(333, 0, 5)
	assert.Equal(t, 16.0, p.Tax) // floor(333 * 0.05) = floor(16.65)
	assert.Equal(t, 333.0+50+16, p.Total)
}

func TestTaxPercentDefaultsToZero(t *testing.T) {
	t.Setenv("TAX_PERCENT", "")
	assert.Equal(t, 0.0, TaxPercent())

	t.Setenv("TAX_PERCENT", "not-a-number")
	assert.Equal(t, 0.0, TaxPercent())

	t.Setenv("TAX_PERCENT", "5")
	assert.Equal(t, 5.0, TaxPercent())
}

func TestGenerateOrderRefShape(t *testing.T) {
	ref := generateOrderRef()
	assert.Regexp(t, `^ORD-\d{8}-[0-9a-f]{8}$`, ref)
	assert.NotEqual(t, ref, generateOrderRef())
}
