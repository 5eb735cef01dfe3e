package graph

import (
	"testing"

	"crumbline-be/internal/graph/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPromoResolver(t *testing.T) {
	t.Run("ValidCode", func(t *testing.T) {
		r, ctx := newTestResolver(t)
		m := &mutationResolver{r}

		_, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 6, Quantity: 1})
		require.NoError(t, err)

		resp, err := m.ApplyPromo(ctx, "welcome10")
		require.NoError(t, err)
		require.True(t, resp.Success)
		assert.Equal(t, "WELCOME10", *resp.Code)

		view, err := (&queryResolver{r}).Cart(ctx)
		require.NoError(t, err)
		require.NotNil(t, view.PromoCode)
		assert.Equal(t, "WELCOME10", *view.PromoCode)
		assert.InDelta(t, 2.80, view.Totals.Discount, 0.001)
	})

	t.Run("InvalidCodeKeepsPrevious", func(t *testing.T) {
		r, ctx := newTestResolver(t)
		m := &mutationResolver{r}

		_, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 6, Quantity: 1})
		require.NoError(t, err)
		_, err = m.ApplyPromo(ctx, "WELCOME10")
		require.NoError(t, err)

		resp, err := m.ApplyPromo(ctx, "EXPIRED99")
		require.NoError(t, err)
		assert.False(t, resp.Success)

		view, err := (&queryResolver{r}).Cart(ctx)
		require.NoError(t, err)
		require.NotNil(t, view.PromoCode)
		assert.Equal(t, "WELCOME10", *view.PromoCode)
	})
}

func TestPlaceOrderResolver(t *testing.T) {
	t.Run("HappyPath", func(t *testing.T) {
		r, ctx := newTestResolver(t)
		m := &mutationResolver{r}

		_, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 1, Quantity: 2})
		require.NoError(t, err)

		open, err := m.OpenCheckout(ctx)
		require.NoError(t, err)
		require.True(t, open.Success)

		resp, err := m.PlaceOrder(ctx)
		require.NoError(t, err)
		require.True(t, resp.Success)
		require.NotNil(t, resp.OrderNumber)
		assert.Regexp(t, `^ORD-`, *resp.OrderNumber)
		assert.Equal(t, "COMPLETE", resp.State)

		view, err := (&queryResolver{r}).Cart(ctx)
		require.NoError(t, err)
		assert.Empty(t, view.Lines)
		assert.Equal(t, "COMPLETE", view.State)
	})

	t.Run("EmptyCartStaysInReview", func(t *testing.T) {
		r, ctx := newTestResolver(t)
		m := &mutationResolver{r}

		_, err := m.OpenCheckout(ctx)
		require.NoError(t, err)

		resp, err := m.PlaceOrder(ctx)
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "REVIEWING_CART", resp.State)
	})

	t.Run("DeliveryWithoutAddress", func(t *testing.T) {
		r, ctx := newTestResolver(t)
		m := &mutationResolver{r}

		_, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 1, Quantity: 1})
		require.NoError(t, err)

		orderType := "DELIVERY"
		resp, err := m.SetOrderContext(ctx, model.OrderContextInput{OrderType: orderType})
		require.NoError(t, err)
		require.True(t, resp.Success)

		_, err = m.OpenCheckout(ctx)
		require.NoError(t, err)

		placed, err := m.PlaceOrder(ctx)
		require.NoError(t, err)
		assert.False(t, placed.Success)
		assert.Equal(t, "REVIEWING_CART", placed.State)
	})
}

func TestContinueShoppingResolver(t *testing.T) {
	r, ctx := newTestResolver(t)
	m := &mutationResolver{r}

	_, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = m.ApplyPromo(ctx, "FREESHIP")
	require.NoError(t, err)
	_, err = m.OpenCheckout(ctx)
	require.NoError(t, err)

	placed, err := m.PlaceOrder(ctx)
	require.NoError(t, err)
	require.True(t, placed.Success)

	resp, err := m.ContinueShopping(ctx)
	require.NoError(t, err)
	require.True(t, resp.Success)

	view, err := (&queryResolver{r}).Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Nil(t, view.PromoCode)
	assert.Nil(t, view.OrderNumber)
	assert.Equal(t, "BROWSING", view.State)
}

func TestDismissResolver(t *testing.T) {
	r, ctx := newTestResolver(t)
	m := &mutationResolver{r}

	_, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = m.OpenCheckout(ctx)
	require.NoError(t, err)

	resp, err := m.Dismiss(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	view, err := (&queryResolver{r}).Cart(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BROWSING", view.State)
	assert.Len(t, view.Lines, 1)
}

func TestSetOrderContextResolver(t *testing.T) {
	r, ctx := newTestResolver(t)
	m := &mutationResolver{r}

	badDate := "tomorrow"
	resp, err := m.SetOrderContext(ctx, model.OrderContextInput{
		OrderType:    "DELIVERY",
		DeliveryDate: &badDate,
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)

	goodDate := "2026-09-01"
	addr := "12 Rye Lane"
	express := "EXPRESS"
	resp, err = m.SetOrderContext(ctx, model.OrderContextInput{
		OrderType:       "DELIVERY",
		DeliveryOption:  &express,
		DeliveryDate:    &goodDate,
		DeliveryAddress: &addr,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	// express delivery fee shows up in totals
	_, err = m.AddToCart(ctx, model.AddToCartInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	view, err := (&queryResolver{r}).Cart(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 7.99, view.Totals.DeliveryFee, 0.001)
}
