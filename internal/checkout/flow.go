package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crumbline-be/internal/cart"
	"crumbline-be/internal/catalog"
	"crumbline-be/internal/logger"
	"crumbline-be/internal/pricing"
	"crumbline-be/internal/promo"

	"go.uber.org/zap"
)

// Flow is the per-session ordering state machine:
//
//	Browsing -> Customizing -> Browsing (confirm or cancel)
//	Browsing -> ReviewingCart -> Processing -> Complete
//	Processing -> ReviewingCart (submission failure, cart intact)
//	Complete -> Browsing (continue shopping, everything reset)
//
// It owns the cart engine and the applied promo for its session and
// serializes every operation, including the asynchronous settlement, so
// the snapshot submitted to the backend matches what the customer is
// charged.
type Flow struct {
	mu sync.Mutex

	sessionID   string
	state       State
	customizing *catalog.Product
	cart        *cart.Engine
	promos      *promo.Table
	applied     *promo.Applied
	orderCtx    OrderContext
	orderNumber string
	backend     OrderBackend
}

func NewFlow(sessionID string, backend OrderBackend, promos *promo.Table) *Flow {
	return &Flow{
		sessionID: sessionID,
		state:     StateBrowsing,
		cart:      cart.NewEngine(),
		promos:    promos,
		backend:   backend,
		orderCtx:  OrderContext{OrderType: pricing.OrderTypePickup, DeliveryOption: pricing.DeliveryStandard},
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CustomizingProduct returns the product open in the customize step, nil
// outside it.
func (f *Flow) CustomizingProduct() *catalog.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.customizing == nil {
		return nil
	}
	cp := *f.customizing
	return &cp
}

// SelectProduct opens the customization step for a product.
func (f *Flow) SelectProduct(p catalog.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing {
		return f.transitionBlocked()
	}
	f.customizing = &p
	f.state = StateCustomizing
	return nil
}

// ConfirmCustomizing adds the customized product to the cart and returns
// to browsing.
func (f *Flow) ConfirmCustomizing(quantity int, c cart.Customization) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateCustomizing {
		return ErrNotCustomizing
	}
	if err := f.cart.AddItem(*f.customizing, quantity, c); err != nil {
		return err
	}
	f.customizing = nil
	f.state = StateBrowsing
	return nil
}

// CancelCustomizing discards the customize step without touching the cart.
func (f *Flow) CancelCustomizing() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateCustomizing {
		return ErrNotCustomizing
	}
	f.customizing = nil
	f.state = StateBrowsing
	return nil
}

// AddItem quick-adds a product without the customization step. Allowed
// while browsing or reviewing; the frozen cart rejects it during
// Processing.
func (f *Flow) AddItem(p catalog.Product, quantity int, c cart.Customization) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateProcessing || f.state == StateComplete {
		return f.transitionBlocked()
	}
	return f.cart.AddItem(p, quantity, c)
}

func (f *Flow) UpdateQuantity(productID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateProcessing || f.state == StateComplete {
		return f.transitionBlocked()
	}
	return f.cart.UpdateQuantity(productID, quantity)
}

func (f *Flow) RemoveItem(productID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateProcessing || f.state == StateComplete {
		return f.transitionBlocked()
	}
	return f.cart.RemoveItem(productID)
}

func (f *Flow) Lines() []cart.Line {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart.Lines()
}

// ApplyPromo validates the code and replaces any previously applied promo.
// Discounts never stack.
func (f *Flow) ApplyPromo(code string) (*promo.Applied, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateProcessing || f.state == StateComplete {
		return nil, f.transitionBlocked()
	}

	applied, err := f.promos.Validate(code, f.cart.Subtotal())
	if err != nil {
		return nil, err
	}
	f.applied = applied
	return applied, nil
}

// RemovePromo clears the applied promo if any.
func (f *Flow) RemovePromo() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateProcessing || f.state == StateComplete {
		return f.transitionBlocked()
	}
	f.applied = nil
	return nil
}

func (f *Flow) AppliedPromo() *promo.Applied {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applied == nil {
		return nil
	}
	cp := *f.applied
	return &cp
}

// SetOrderContext records the fulfillment choices. The delivery address
// requirement is enforced at PlaceOrder so pickup/delivery can be toggled
// freely during review.
func (f *Flow) SetOrderContext(oc OrderContext) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateProcessing || f.state == StateComplete {
		return f.transitionBlocked()
	}
	switch oc.OrderType {
	case pricing.OrderTypePickup, pricing.OrderTypeDelivery:
	default:
		return ErrBadOrderType
	}
	if oc.DeliveryOption == "" {
		oc.DeliveryOption = pricing.DeliveryStandard
	}
	f.orderCtx = oc
	return nil
}

func (f *Flow) OrderContext() OrderContext {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderCtx
}

// Totals prices the current cart with the applied promo and fulfillment
// choices.
func (f *Flow) Totals() pricing.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totalsLocked()
}

func (f *Flow) totalsLocked() pricing.Totals {
	return pricing.ComputeTotals(f.cart.Subtotal(), f.applied, f.orderCtx.OrderType, f.orderCtx.DeliveryOption)
}

// OpenCheckout moves from browsing to cart review.
func (f *Flow) OpenCheckout() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing {
		return f.transitionBlocked()
	}
	f.state = StateReviewingCart
	return nil
}

// Dismiss handles modal dismissal (escape, click-outside). Honored only
// outside Processing and Complete so an order in flight cannot be lost by
// accident.
func (f *Flow) Dismiss() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateCustomizing:
		f.customizing = nil
		f.state = StateBrowsing
	case StateReviewingCart:
		f.state = StateBrowsing
	case StateProcessing:
		return ErrOrderInFlight
	case StateComplete:
		return ErrOrderComplete
	}
	return nil
}

// PlaceOrder snapshots the cart and totals, freezes the cart, enters
// Processing and submits asynchronously. The returned channel delivers the
// settlement exactly once. Local validation failures (empty cart, missing
// delivery address) reject the attempt without leaving ReviewingCart.
//
// The submission is non-cancellable: the caller's context deadline does
// not abort an order already in flight.
func (f *Flow) PlaceOrder(ctx context.Context) (<-chan Result, error) {
	f.mu.Lock()

	if f.state != StateReviewingCart {
		err := f.transitionBlocked()
		f.mu.Unlock()
		return nil, err
	}
	if f.cart.IsEmpty() {
		f.mu.Unlock()
		return nil, cart.ErrCartEmpty
	}
	if err := f.orderCtx.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}

	sub := Submission{
		SessionID:    f.sessionID,
		Lines:        f.cart.Lines(),
		Totals:       f.totalsLocked(),
		OrderContext: f.orderCtx,
		PlacedAt:     time.Now(),
	}
	if f.applied != nil {
		sub.PromoCode = f.applied.Code
	}

	f.cart.Freeze()
	f.state = StateProcessing
	f.mu.Unlock()

	ch := make(chan Result, 1)
	go f.settle(context.WithoutCancel(ctx), sub, ch)
	return ch, nil
}

func (f *Flow) settle(ctx context.Context, sub Submission, ch chan<- Result) {
	log := logger.FromCtx(ctx).With(
		zap.String("session_id", f.sessionID),
		zap.String("total", sub.Totals.Total.Dollars()),
	)

	orderNumber, err := f.backend.SubmitOrder(ctx, sub)

	f.mu.Lock()
	if err != nil {
		// cart stays intact; the customer lands back on review
		f.state = StateReviewingCart
		f.cart.Thaw()
		f.mu.Unlock()

		log.Error("order submission failed", zap.Error(err))
		ch <- Result{Err: fmt.Errorf("%w: %v", ErrSubmissionFailed, err)}
		return
	}

	f.orderNumber = orderNumber
	f.state = StateComplete
	f.cart.Clear()
	f.mu.Unlock()

	log.Info("order settled", zap.String("order_number", orderNumber))
	ch <- Result{OrderNumber: orderNumber}
}

// OrderNumber is set once the order completes.
func (f *Flow) OrderNumber() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderNumber
}

// ContinueShopping leaves the completed order and resets all transient
// session state: promo, customization, fulfillment choices, order number.
func (f *Flow) ContinueShopping() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateComplete {
		return ErrOrderNotDone
	}
	f.applied = nil
	f.customizing = nil
	f.orderNumber = ""
	f.orderCtx = OrderContext{OrderType: pricing.OrderTypePickup, DeliveryOption: pricing.DeliveryStandard}
	f.cart.Clear()
	f.state = StateBrowsing
	return nil
}

// transitionBlocked names the guard that rejected an operation in the
// current state.
func (f *Flow) transitionBlocked() error {
	switch f.state {
	case StateProcessing:
		return ErrOrderInFlight
	case StateComplete:
		return ErrOrderComplete
	case StateCustomizing:
		return ErrNotBrowsing
	case StateReviewingCart:
		return ErrNotBrowsing
	default:
		return ErrNotReviewing
	}
}
