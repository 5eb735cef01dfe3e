package promo

import (
	"testing"

	"crumbline-be/internal/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	table := DefaultTable()

	t.Run("ExactMatch", func(t *testing.T) {
		applied, err := table.Validate("WELCOME10", 10000)
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", applied.Code)
		assert.Equal(t, int64(1000), applied.DiscountBP)
		assert.False(t, applied.FreeShipping)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		applied, err := table.Validate("welcome10", 10000)
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", applied.Code)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		_, err := table.Validate("  freeship ", 500)
		assert.NoError(t, err)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		_, err := table.Validate("NOPE", 10000)
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("NoPartialMatch", func(t *testing.T) {
		_, err := table.Validate("WELCOME", 10000)
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("FreeShipping", func(t *testing.T) {
		applied, err := table.Validate("FREESHIP", 100)
		require.NoError(t, err)
		assert.True(t, applied.FreeShipping)
		assert.Zero(t, applied.DiscountBP)
	})

	t.Run("Save15UnconditionalBelowFifty", func(t *testing.T) {
		// the description implies a $50 floor; the table has never
		// enforced one
		applied, err := table.Validate("SAVE15", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), applied.DiscountBP)
	})
}

func TestValidateMinSubtotal(t *testing.T) {
	table := NewTable([]Promo{
		{Code: "BIG50", DiscountBP: 5000, MinSubtotal: money.Cents(5000)},
	})

	_, err := table.Validate("BIG50", 4999)
	assert.ErrorIs(t, err, ErrMinSubtotal)

	applied, err := table.Validate("BIG50", 5000)
	require.NoError(t, err)
	assert.Equal(t, "BIG50", applied.Code)
}
