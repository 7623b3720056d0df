// internal/pricing/pricing.go
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bookloft/bookstore-backend/internal/config"
)

// Rule derives a deterministic total for a physical-book order. Shipping is
// one of two flat costs: the lower one when the buyer's stated state contains
// the home region, the higher one otherwise. Empty or unrecognised region text
// classifies as out-of-region, which fails safe toward the higher cost.
type Rule struct {
	homeRegion    string
	inRegionCost  decimal.Decimal
	outRegionCost decimal.Decimal
}

// Quote is a pure projection of a unit price and a region string. Total is
// exactly UnitPrice + ShippingCost; no rounding is applied.
type Quote struct {
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InRegion     bool            `json:"in_region"`
}

func NewRule(cfg config.ShippingConfig) *Rule {
	return &Rule{
		homeRegion:    strings.ToLower(cfg.HomeRegion),
		inRegionCost:  cfg.InRegionCost,
		outRegionCost: cfg.OutRegionCost,
	}
}

// InRegion reports whether the free-text region names the home region,
// matching case-insensitively on containment.
func (r *Rule) InRegion(region string) bool {
	return strings.Contains(strings.ToLower(region), r.homeRegion)
}

// ShippingCost returns one of the rule's two flat costs.
func (r *Rule) ShippingCost(region string) decimal.Decimal {
	if r.InRegion(region) {
		return r.inRegionCost
	}
	return r.outRegionCost
}

// Quote recomputes from its inputs on every call so a displayed total can
// never drift from the region text it was derived from.
func (r *Rule) Quote(unitPrice decimal.Decimal, region string) Quote {
	shipping := r.ShippingCost(region)
	return Quote{
		UnitPrice:    unitPrice,
		ShippingCost: shipping,
		TotalAmount:  unitPrice.Add(shipping),
		InRegion:     r.InRegion(region),
	}
}
