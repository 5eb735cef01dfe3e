package pricing

import (
	"testing"

	"crumbline-be/internal/money"
	"crumbline-be/internal/promo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustApply(t *testing.T, code string, subtotal money.Cents) *promo.Applied {
	t.Helper()
	applied, err := promo.DefaultTable().Validate(code, subtotal)
	require.NoError(t, err)
	return applied
}

func TestComputeTotals(t *testing.T) {
	t.Run("PickupNoPromo", func(t *testing.T) {
		got := ComputeTotals(2500, nil, OrderTypePickup, DeliveryStandard)

		assert.Equal(t, money.Cents(0), got.Discount)
		assert.Equal(t, money.Cents(200), got.Tax)
		assert.Equal(t, money.Cents(0), got.DeliveryFee)
		assert.Equal(t, money.Cents(2700), got.Total)
	})

	t.Run("Welcome10PickupHundredDollars", func(t *testing.T) {
		got := ComputeTotals(10000, mustApply(t, "WELCOME10", 10000), OrderTypePickup, DeliveryStandard)

		assert.Equal(t, money.Cents(1000), got.Discount) // $10.00
		assert.Equal(t, money.Cents(720), got.Tax)       // 8% of $90
		assert.Equal(t, money.Cents(0), got.DeliveryFee)
		assert.Equal(t, money.Cents(9720), got.Total) // $97.20
	})

	t.Run("DeliveryTiers", func(t *testing.T) {
		cases := []struct {
			option DeliveryOption
			fee    money.Cents
		}{
			{DeliveryStandard, 499},
			{DeliveryScheduled, 499},
			{DeliveryExpress, 799},
		}
		for _, tc := range cases {
			got := ComputeTotals(1000, nil, OrderTypeDelivery, tc.option)
			assert.Equal(t, tc.fee, got.DeliveryFee, "option %s", tc.option)
			assert.Equal(t, 1000+got.Tax+tc.fee, got.Total)
		}
	})

	t.Run("FreeShipWaivesDeliveryFee", func(t *testing.T) {
		got := ComputeTotals(350, mustApply(t, "FREESHIP", 350), OrderTypeDelivery, DeliveryStandard)

		assert.Equal(t, money.Cents(0), got.DeliveryFee)
		assert.Equal(t, money.Cents(0), got.Discount)
	})

	t.Run("FreeShipIgnoredForPickup", func(t *testing.T) {
		got := ComputeTotals(350, mustApply(t, "FREESHIP", 350), OrderTypePickup, DeliveryStandard)
		assert.Equal(t, money.Cents(0), got.DeliveryFee)
	})

	t.Run("DiscountNeverExceedsSubtotal", func(t *testing.T) {
		for _, subtotal := range []money.Cents{0, 1, 99, 4999, 123456} {
			got := ComputeTotals(subtotal, mustApply(t, "BDAY20", subtotal), OrderTypeDelivery, DeliveryExpress)
			assert.LessOrEqual(t, got.Discount, got.Subtotal)
			assert.GreaterOrEqual(t, got.Total, got.Subtotal-got.Discount)
			assert.GreaterOrEqual(t, got.Total, money.Cents(0))
		}
	})

	t.Run("EmptyCart", func(t *testing.T) {
		got := ComputeTotals(0, nil, OrderTypePickup, DeliveryStandard)
		assert.Equal(t, money.Cents(0), got.Total)
	})
}
