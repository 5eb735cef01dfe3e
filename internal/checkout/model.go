package checkout

import (
	"context"
	"time"

	"crumbline-be/internal/cart"
	"crumbline-be/internal/pricing"
)

type State string

const (
	StateBrowsing      State = "BROWSING"
	StateCustomizing   State = "CUSTOMIZING"
	StateReviewingCart State = "REVIEWING_CART"
	StateProcessing    State = "PROCESSING"
	StateComplete      State = "COMPLETE"
)

// OrderContext carries the fulfillment choices made during review. The
// delivery fields are meaningful only for delivery orders.
type OrderContext struct {
	OrderType       pricing.OrderType
	DeliveryOption  pricing.DeliveryOption
	DeliveryDate    time.Time
	DeliveryTime    string
	DeliveryAddress string
}

// Validate checks the context is submittable: a known order type and, for
// delivery, a non-empty address.
func (oc OrderContext) Validate() error {
	switch oc.OrderType {
	case pricing.OrderTypePickup:
		return nil
	case pricing.OrderTypeDelivery:
		if oc.DeliveryAddress == "" {
			return ErrAddressRequired
		}
		switch oc.DeliveryOption {
		case pricing.DeliveryStandard, pricing.DeliveryExpress, pricing.DeliveryScheduled:
			return nil
		default:
			return ErrBadDeliveryTier
		}
	default:
		return ErrBadOrderType
	}
}

// Submission is the frozen snapshot handed to the order backend: the cart
// lines and totals exactly as they were when Processing was entered.
type Submission struct {
	SessionID    string
	Lines        []cart.Line
	Totals       pricing.Totals
	PromoCode    string
	OrderContext OrderContext
	PlacedAt     time.Time
}

// Result is the settlement outcome delivered on the channel returned by
// PlaceOrder.
type Result struct {
	OrderNumber string
	Err         error
}

// OrderBackend accepts a submission and returns the order number. It is
// called at most once per Processing entry and is never retried by the
// flow; failures surface to the customer.
type OrderBackend interface {
	SubmitOrder(ctx context.Context, sub Submission) (string, error)
}
