package graph

import (
	"context"
	"testing"
	"time"

	"crumbline-be/internal/catalog"
	"crumbline-be/internal/graph/model"
	"crumbline-be/internal/middleware"
	"crumbline-be/internal/order"
	"crumbline-be/internal/promo"
	"crumbline-be/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*Resolver, context.Context) {
	t.Helper()
	registry := session.NewRegistry(order.NewMemoryBackend(0), promo.DefaultTable(), time.Hour)
	t.Cleanup(registry.Close)

	r := &Resolver{
		CatalogSvc: catalog.NewService(catalog.NewStaticRepository()),
		Sessions:   registry,
	}
	ctx := middleware.WithSessionID(context.Background(), "test-session")
	return r, ctx
}

func TestAddToCartResolver(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, ctx := newTestResolver(t)
		m := &mutationResolver{r}

		resp, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 1, Quantity: 2})
		require.NoError(t, err)
		assert.True(t, resp.Success)

		view, err := (&queryResolver{r}).Cart(ctx)
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 2, view.Lines[0].Quantity)
		assert.InDelta(t, 6.50, view.Lines[0].UnitPrice, 0.001)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		r, ctx := newTestResolver(t)
		m := &mutationResolver{r}

		resp, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 999, Quantity: 1})
		require.NoError(t, err)
		assert.False(t, resp.Success)
	})

	t.Run("ZeroQuantityRejected", func(t *testing.T) {
		r, ctx := newTestResolver(t)
		m := &mutationResolver{r}

		resp, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 1, Quantity: 0})
		require.NoError(t, err)
		assert.False(t, resp.Success)
	})

	t.Run("NoSession", func(t *testing.T) {
		r, _ := newTestResolver(t)
		m := &mutationResolver{r}

		_, err := m.AddToCart(context.Background(), model.AddToCartInput{ProductID: 1, Quantity: 1})
		assert.ErrorIs(t, err, errNoSession)
	})
}

func TestCustomizationResolvers(t *testing.T) {
	r, ctx := newTestResolver(t)
	m := &mutationResolver{r}

	resp, err := m.SelectProduct(ctx, 6)
	require.NoError(t, err)
	require.True(t, resp.Success)

	size := "LARGE"
	wrap := "PREMIUM"
	msg := "happy birthday"
	resp, err = m.ConfirmCustomization(ctx, 1, &model.CustomizationInput{
		Size: &size, GiftMessage: &msg, GiftPackaging: &wrap,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	view, err := (&queryResolver{r}).Cart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.NotNil(t, view.Lines[0].GiftPackaging)
	assert.Equal(t, "PREMIUM", *view.Lines[0].GiftPackaging)
	// torte 28.00 + premium wrap 5.00
	assert.InDelta(t, 33.00, view.Lines[0].LineTotal, 0.001)
	assert.Equal(t, "BROWSING", view.State)
}

func TestUpdateCartQuantityResolver(t *testing.T) {
	r, ctx := newTestResolver(t)
	m := &mutationResolver{r}

	_, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 3, Quantity: 1})
	require.NoError(t, err)

	resp, err := m.UpdateCartQuantity(ctx, model.UpdateCartInput{ProductID: 3, Quantity: 0})
	require.NoError(t, err)
	assert.False(t, resp.Success)

	view, err := (&queryResolver{r}).Cart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)
}

func TestRemoveFromCartResolver(t *testing.T) {
	r, ctx := newTestResolver(t)
	m := &mutationResolver{r}

	_, err := m.AddToCart(ctx, model.AddToCartInput{ProductID: 3, Quantity: 1})
	require.NoError(t, err)

	resp, err := m.RemoveFromCart(ctx, 3)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	view, err := (&queryResolver{r}).Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestProductsQuery(t *testing.T) {
	r, ctx := newTestResolver(t)
	q := &queryResolver{r}

	all, err := q.Products(ctx, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(catalog.Menu))

	vegan := true
	gf := true
	filtered, err := q.Products(ctx, nil, &vegan, &gf)
	require.NoError(t, err)
	for _, p := range filtered {
		assert.True(t, p.IsVegan)
		assert.True(t, p.IsGlutenFree)
	}
}
