package model

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// PricingSnapshot is the derived price summary of a cart.
// Invariant: 0 <= FinalTotal <= SubTotal.
type PricingSnapshot struct {
	SubTotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	FinalTotal       decimal.Decimal `json:"final_total"`
	DiscountEligible bool            `json:"discount_eligible"`
	DiscountActive   bool            `json:"discount_active"`
}

// Applied reports whether the discount reduced the total
func (s PricingSnapshot) Applied() bool {
	return s.DiscountAmount.IsPositive()
}

// FormatCLP renders an amount the way Chilean pesos are displayed:
// no decimals and "." as thousands separator, e.g. $12.990
func FormatCLP(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + "$" + humanize.FormatFloat("#.###,", amount.Round(0).InexactFloat64())
}

// Display is the formatted view of a snapshot
type Display struct {
	SubTotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	FinalTotal     string `json:"final_total"`
}

func (s PricingSnapshot) Display() Display {
	return Display{
		SubTotal:       FormatCLP(s.SubTotal),
		DiscountAmount: FormatCLP(s.DiscountAmount),
		FinalTotal:     FormatCLP(s.FinalTotal),
	}
}
