package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crumbline-be/internal/cart"
	"crumbline-be/internal/catalog"
	"crumbline-be/internal/money"
	"crumbline-be/internal/pricing"
	"crumbline-be/internal/promo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend simulates the order collaborator. Delay stands in for the
// network latency the real storefront fakes with timers.
type stubBackend struct {
	mu     sync.Mutex
	delay  time.Duration
	err    error
	number string
	subs   []Submission
}

func (b *stubBackend) SubmitOrder(_ context.Context, sub Submission) (string, error) {
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	if b.err != nil {
		return "", b.err
	}
	if b.number != "" {
		return b.number, nil
	}
	return "ORD-TEST", nil
}

func (b *stubBackend) submissions() []Submission {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Submission(nil), b.subs...)
}

var (
	torte  = catalog.Product{ID: 6, Name: "Flourless Chocolate Torte", PriceCents: 2800}
	muffin = catalog.Product{ID: 9, Name: "Lemon Poppyseed Muffin", PriceCents: 350}
)

func newTestFlow(backend OrderBackend) *Flow {
	return NewFlow("sess-1", backend, promo.DefaultTable())
}

func placeAndAwait(t *testing.T, f *Flow) Result {
	t.Helper()
	ch, err := f.PlaceOrder(context.Background())
	require.NoError(t, err)
	select {
	case res := <-ch:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("settlement never arrived")
		return Result{}
	}
}

func TestCustomizeTransitions(t *testing.T) {
	f := newTestFlow(&stubBackend{})

	require.NoError(t, f.SelectProduct(torte))
	assert.Equal(t, StateCustomizing, f.State())
	require.NotNil(t, f.CustomizingProduct())
	assert.Equal(t, torte.ID, f.CustomizingProduct().ID)

	require.NoError(t, f.ConfirmCustomizing(1, cart.Customization{Size: cart.SizeLarge}))
	assert.Equal(t, StateBrowsing, f.State())
	require.Len(t, f.Lines(), 1)
	assert.Equal(t, cart.SizeLarge, f.Lines()[0].Customization.Size)
	assert.Nil(t, f.CustomizingProduct())
}

func TestCancelCustomizingLeavesCartAlone(t *testing.T) {
	f := newTestFlow(&stubBackend{})

	require.NoError(t, f.SelectProduct(torte))
	require.NoError(t, f.CancelCustomizing())

	assert.Equal(t, StateBrowsing, f.State())
	assert.Empty(t, f.Lines())
}

func TestEmptyCartOrderRejected(t *testing.T) {
	backend := &stubBackend{}
	f := newTestFlow(backend)

	require.NoError(t, f.OpenCheckout())
	_, err := f.PlaceOrder(context.Background())

	assert.ErrorIs(t, err, cart.ErrCartEmpty)
	assert.Equal(t, StateReviewingCart, f.State())
	assert.Empty(t, backend.submissions())
}

func TestDeliveryRequiresAddress(t *testing.T) {
	f := newTestFlow(&stubBackend{})
	require.NoError(t, f.AddItem(muffin, 1, cart.Customization{}))
	require.NoError(t, f.SetOrderContext(OrderContext{
		OrderType:      pricing.OrderTypeDelivery,
		DeliveryOption: pricing.DeliveryStandard,
	}))
	require.NoError(t, f.OpenCheckout())

	_, err := f.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrAddressRequired)
	assert.Equal(t, StateReviewingCart, f.State())
}

func TestPlaceOrderHappyPath(t *testing.T) {
	backend := &stubBackend{delay: 20 * time.Millisecond, number: "ORD-A1B2C3"}
	f := newTestFlow(backend)

	require.NoError(t, f.AddItem(torte, 1, cart.Customization{}))
	_, err := f.ApplyPromo("WELCOME10")
	require.NoError(t, err)
	require.NoError(t, f.OpenCheckout())

	res := placeAndAwait(t, f)
	require.NoError(t, res.Err)
	assert.Equal(t, "ORD-A1B2C3", res.OrderNumber)
	assert.Equal(t, StateComplete, f.State())
	assert.Equal(t, "ORD-A1B2C3", f.OrderNumber())
	assert.Empty(t, f.Lines())

	subs := backend.submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, "WELCOME10", subs[0].PromoCode)
	assert.Equal(t, money.Cents(2800), subs[0].Totals.Subtotal)
	assert.Equal(t, money.Cents(280), subs[0].Totals.Discount)
}

func TestCartFrozenWhileProcessing(t *testing.T) {
	backend := &stubBackend{delay: 150 * time.Millisecond}
	f := newTestFlow(backend)

	require.NoError(t, f.AddItem(torte, 1, cart.Customization{}))
	require.NoError(t, f.OpenCheckout())

	ch, err := f.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateProcessing, f.State())

	// every mutation is rejected while the submission is in flight
	assert.Error(t, f.AddItem(muffin, 1, cart.Customization{}))
	assert.Error(t, f.UpdateQuantity(torte.ID, 5))
	assert.Error(t, f.RemoveItem(torte.ID))
	_, promoErr := f.ApplyPromo("SAVE15")
	assert.ErrorIs(t, promoErr, ErrOrderInFlight)
	assert.ErrorIs(t, f.Dismiss(), ErrOrderInFlight)

	res := <-ch
	require.NoError(t, res.Err)
	assert.Equal(t, StateComplete, f.State())
}

func TestSnapshotTakenAtProcessingEntry(t *testing.T) {
	backend := &stubBackend{delay: 100 * time.Millisecond}
	f := newTestFlow(backend)

	require.NoError(t, f.AddItem(torte, 2, cart.Customization{}))
	require.NoError(t, f.OpenCheckout())

	ch, err := f.PlaceOrder(context.Background())
	require.NoError(t, err)
	<-ch

	subs := backend.submissions()
	require.Len(t, subs, 1)
	require.Len(t, subs[0].Lines, 1)
	assert.Equal(t, 2, subs[0].Lines[0].Quantity)
	assert.Equal(t, money.Cents(5600), subs[0].Totals.Subtotal)
}

func TestSubmissionFailureReturnsToReview(t *testing.T) {
	backend := &stubBackend{err: errors.New("backend unavailable")}
	f := newTestFlow(backend)

	require.NoError(t, f.AddItem(torte, 1, cart.Customization{}))
	require.NoError(t, f.OpenCheckout())

	res := placeAndAwait(t, f)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrSubmissionFailed)

	// cart intact, back on review, mutations allowed again
	assert.Equal(t, StateReviewingCart, f.State())
	require.Len(t, f.Lines(), 1)
	assert.NoError(t, f.UpdateQuantity(torte.ID, 3))
	assert.Empty(t, f.OrderNumber())
}

func TestPromoReplaceNotStack(t *testing.T) {
	f := newTestFlow(&stubBackend{})
	// subtotal $50
	require.NoError(t, f.AddItem(catalog.Product{ID: 42, Name: "Party Box", PriceCents: 5000}, 1, cart.Customization{}))

	_, err := f.ApplyPromo("SAVE15")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(750), f.Totals().Discount)

	_, err = f.ApplyPromo("WELCOME10")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(500), f.Totals().Discount)
}

func TestInvalidPromoLeavesAppliedUnchanged(t *testing.T) {
	f := newTestFlow(&stubBackend{})
	require.NoError(t, f.AddItem(torte, 1, cart.Customization{}))

	_, err := f.ApplyPromo("WELCOME10")
	require.NoError(t, err)

	_, err = f.ApplyPromo("BOGUS")
	assert.ErrorIs(t, err, promo.ErrInvalidCode)
	require.NotNil(t, f.AppliedPromo())
	assert.Equal(t, "WELCOME10", f.AppliedPromo().Code)
}

func TestRemovePromo(t *testing.T) {
	f := newTestFlow(&stubBackend{})
	require.NoError(t, f.AddItem(torte, 1, cart.Customization{}))

	_, err := f.ApplyPromo("BDAY20")
	require.NoError(t, err)
	require.NoError(t, f.RemovePromo())
	assert.Nil(t, f.AppliedPromo())
	assert.Equal(t, money.Cents(0), f.Totals().Discount)
}

func TestContinueShoppingResetsSession(t *testing.T) {
	f := newTestFlow(&stubBackend{})

	require.NoError(t, f.AddItem(torte, 1, cart.Customization{
		Gift: &cart.Gift{Message: "congrats", Packaging: cart.PackagingPremium},
	}))
	_, err := f.ApplyPromo("FREESHIP")
	require.NoError(t, err)
	require.NoError(t, f.SetOrderContext(OrderContext{
		OrderType:       pricing.OrderTypeDelivery,
		DeliveryOption:  pricing.DeliveryExpress,
		DeliveryAddress: "12 Rye Lane",
	}))
	require.NoError(t, f.OpenCheckout())

	res := placeAndAwait(t, f)
	require.NoError(t, res.Err)

	assert.ErrorIs(t, f.Dismiss(), ErrOrderComplete)
	require.NoError(t, f.ContinueShopping())

	// identical to initial load
	assert.Equal(t, StateBrowsing, f.State())
	assert.Empty(t, f.Lines())
	assert.Nil(t, f.AppliedPromo())
	assert.Empty(t, f.OrderNumber())
	assert.Equal(t, pricing.OrderTypePickup, f.OrderContext().OrderType)

	require.NoError(t, f.AddItem(muffin, 1, cart.Customization{}))
	assert.Equal(t, money.Cents(350), f.Totals().Subtotal)
}

func TestContinueShoppingOnlyFromComplete(t *testing.T) {
	f := newTestFlow(&stubBackend{})
	assert.ErrorIs(t, f.ContinueShopping(), ErrOrderNotDone)
}

func TestDismissFromReviewAndCustomize(t *testing.T) {
	f := newTestFlow(&stubBackend{})

	require.NoError(t, f.SelectProduct(torte))
	require.NoError(t, f.Dismiss())
	assert.Equal(t, StateBrowsing, f.State())

	require.NoError(t, f.AddItem(torte, 1, cart.Customization{}))
	require.NoError(t, f.OpenCheckout())
	require.NoError(t, f.Dismiss())
	assert.Equal(t, StateBrowsing, f.State())
	// dismissal never drops the cart
	assert.Len(t, f.Lines(), 1)
}

func TestOrderContextValidate(t *testing.T) {
	cases := []struct {
		name string
		oc   OrderContext
		err  error
	}{
		{"Pickup", OrderContext{OrderType: pricing.OrderTypePickup}, nil},
		{"DeliveryWithAddress", OrderContext{
			OrderType: pricing.OrderTypeDelivery, DeliveryOption: pricing.DeliveryScheduled,
			DeliveryAddress: "1 Crumb St",
		}, nil},
		{"DeliveryNoAddress", OrderContext{
			OrderType: pricing.OrderTypeDelivery, DeliveryOption: pricing.DeliveryStandard,
		}, ErrAddressRequired},
		{"DeliveryBadTier", OrderContext{
			OrderType: pricing.OrderTypeDelivery, DeliveryOption: "DRONE",
			DeliveryAddress: "1 Crumb St",
		}, ErrBadDeliveryTier},
		{"UnknownType", OrderContext{OrderType: "TELEPORT"}, ErrBadOrderType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.oc.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}
