package service

import (
	cart "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/pricing/model"

	"github.com/shopspring/decimal"
)

// DiscountRate is the institutional discount applied to the subtotal
var DiscountRate = decimal.RequireFromString("0.20")

// Calculator derives a PricingSnapshot from cart lines. It has no state and
// never rounds; rounding is left to display formatting.
type Calculator struct{}

func (Calculator) Calculate(lines []cart.CartLine, eligible, active bool) model.PricingSnapshot {
	subTotal := decimal.Zero
	for _, l := range lines {
		subTotal = subTotal.Add(l.Subtotal())
	}

	discount := decimal.Zero
	if eligible && active {
		discount = subTotal.Mul(DiscountRate)
	}

	return model.PricingSnapshot{
		SubTotal:         subTotal,
		DiscountAmount:   discount,
		FinalTotal:       subTotal.Sub(discount),
		DiscountEligible: eligible,
		DiscountActive:   active,
	}
}
