// internal/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bookloft/bookstore-backend/internal/config"
)

func testRule() *Rule {
	return NewRule(config.ShippingConfig{
		HomeRegion:    "tamil nadu",
		InRegionCost:  decimal.NewFromInt(50),
		OutRegionCost: decimal.NewFromInt(100),
	})
}

func TestQuoteInRegion(t *testing.T) {
	rule := testRule()

	q := rule.Quote(decimal.NewFromFloat(500.00), "Tamil Nadu")

	assert.True(t, q.InRegion)
	assert.Equal(t, "50", q.ShippingCost.String())
	assert.Equal(t, "550", q.TotalAmount.String())
}

func TestQuoteOutOfRegion(t *testing.T) {
	rule := testRule()

	q := rule.Quote(decimal.NewFromFloat(500.00), "Kerala")

	assert.False(t, q.InRegion)
	assert.Equal(t, "100", q.ShippingCost.String())
	assert.Equal(t, "600", q.TotalAmount.String())
}

func TestQuoteEmptyRegionFailsSafe(t *testing.T) {
	rule := testRule()

	q := rule.Quote(decimal.NewFromFloat(500.00), "")

	assert.False(t, q.InRegion)
	assert.Equal(t, "100", q.ShippingCost.String())
	assert.Equal(t, "600", q.TotalAmount.String())
}

func TestInRegionMatchesOnContainment(t *testing.T) {
	rule := testRule()

	cases := map[string]bool{
		"tamil nadu":              true,
		"TAMIL NADU":              true,
		"Chennai, Tamil Nadu":     true,
		"  tamilnadu":             false,
		"Kerala":                  false,
		"Puducherry near TN":      false,
		"tamil":                   false,
		"Tamil Nadu - Coimbatore": true,
	}

	for region, want := range cases {
		assert.Equal(t, want, rule.InRegion(region), "region %q", region)
	}
}

func TestShippingCostIsAlwaysOneOfTheTwoConstants(t *testing.T) {
	rule := testRule()

	regions := []string{"", "Tamil Nadu", "Kerala", "???", "  ", "tamil nadu tamil nadu"}
	for _, region := range regions {
		cost := rule.ShippingCost(region)
		assert.True(t,
			cost.Equal(decimal.NewFromInt(50)) || cost.Equal(decimal.NewFromInt(100)),
			"region %q produced cost %s", region, cost)
	}
}

func TestTotalIsExactSum(t *testing.T) {
	rule := testRule()

	prices := []string{"0", "0.01", "199.99", "500.00", "1249.50"}
	for _, p := range prices {
		price, err := decimal.NewFromString(p)
		assert.NoError(t, err)

		q := rule.Quote(price, "Tamil Nadu")
		assert.True(t, q.TotalAmount.Equal(price.Add(decimal.NewFromInt(50))),
			"price %s: got total %s", p, q.TotalAmount)
	}
}

func TestQuoteIsIdempotent(t *testing.T) {
	rule := testRule()
	price := decimal.NewFromFloat(325.75)

	first := rule.Quote(price, "Tamil Nadu")
	for i := 0; i < 5; i++ {
		again := rule.Quote(price, "Tamil Nadu")
		assert.Equal(t, first, again)
	}
}
