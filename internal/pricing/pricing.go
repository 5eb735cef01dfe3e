package pricing

import (
	"crumbline-be/internal/money"
	"crumbline-be/internal/promo"
)

type OrderType string

const (
	OrderTypePickup   OrderType = "PICKUP"
	OrderTypeDelivery OrderType = "DELIVERY"
)

type DeliveryOption string

const (
	DeliveryStandard  DeliveryOption = "STANDARD"
	DeliveryExpress   DeliveryOption = "EXPRESS"
	DeliveryScheduled DeliveryOption = "SCHEDULED"
)

// TaxRateBP is the flat sales tax in basis points, applied to the
// discounted subtotal.
const TaxRateBP = 800

// FeeCents is the delivery tier's charge. Unknown tiers fall back to the
// standard fee.
func (d DeliveryOption) FeeCents() money.Cents {
	if d == DeliveryExpress {
		return 799
	}
	return 499
}

type Totals struct {
	Subtotal    money.Cents
	Discount    money.Cents
	Tax         money.Cents
	DeliveryFee money.Cents
	Total       money.Cents
}

// ComputeTotals derives the order totals from the cart subtotal, the
// applied promo (nil when none), the order type and the delivery tier.
// Pure: same inputs always yield the same totals.
//
// The discount is a fraction of the subtotal so it can never exceed it;
// tax and fees are non-negative, so Total >= Subtotal - Discount >= 0.
func ComputeTotals(subtotal money.Cents, applied *promo.Applied, orderType OrderType, option DeliveryOption) Totals {
	t := Totals{Subtotal: subtotal}

	if applied != nil && applied.DiscountBP > 0 {
		t.Discount = subtotal.ApplyRate(applied.DiscountBP)
	}

	taxable := subtotal - t.Discount
	t.Tax = taxable.ApplyRate(TaxRateBP)

	if orderType == OrderTypeDelivery {
		if applied == nil || !applied.FreeShipping {
			t.DeliveryFee = option.FeeCents()
		}
	}

	t.Total = taxable + t.Tax + t.DeliveryFee
	return t
}
