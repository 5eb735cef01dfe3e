package cart

import (
	"testing"

	"crumbline-be/internal/catalog"
	"crumbline-be/internal/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sourdough = catalog.Product{ID: 1, Name: "Classic Sourdough", PriceCents: 650}
	croissant = catalog.Product{ID: 3, Name: "Butter Croissant", PriceCents: 395}
)

func TestAddItem(t *testing.T) {
	t.Run("NewLineSnapshotsPrice", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 2, Customization{Size: SizeMedium}))

		lines := e.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, money.Cents(650), lines[0].UnitPrice)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("MergesByProductID", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 1, Customization{Size: SizeSmall}))
		require.NoError(t, e.AddItem(sourdough, 2, Customization{Size: SizeLarge, SpecialInstructions: "sliced"}))

		lines := e.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity)
		// first customization wins
		assert.Equal(t, SizeSmall, lines[0].Customization.Size)
		assert.Empty(t, lines[0].Customization.SpecialInstructions)
	})

	t.Run("RejectsZeroQuantity", func(t *testing.T) {
		e := NewEngine()
		assert.ErrorIs(t, e.AddItem(sourdough, 0, Customization{}), ErrInvalidQuantity)
		assert.True(t, e.IsEmpty())
	})

	t.Run("KeepsInsertionOrder", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(croissant, 1, Customization{}))
		require.NoError(t, e.AddItem(sourdough, 1, Customization{}))
		require.NoError(t, e.AddItem(croissant, 1, Customization{}))

		lines := e.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, croissant.ID, lines[0].ProductID)
		assert.Equal(t, sourdough.ID, lines[1].ProductID)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("RemovesLine", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 1, Customization{}))
		require.NoError(t, e.RemoveItem(sourdough.ID))
		assert.True(t, e.IsEmpty())
	})

	t.Run("AbsentProductIsNoop", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 1, Customization{}))
		require.NoError(t, e.RemoveItem(999))
		assert.Len(t, e.Lines(), 1)
	})

	t.Run("ReAddSnapshotsFreshPrice", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 1, Customization{}))
		require.NoError(t, e.RemoveItem(sourdough.ID))

		repriced := sourdough
		repriced.PriceCents = 700
		require.NoError(t, e.AddItem(repriced, 1, Customization{}))

		lines := e.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, money.Cents(700), lines[0].UnitPrice)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("UpdatesInPlace", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 1, Customization{}))
		require.NoError(t, e.UpdateQuantity(sourdough.ID, 5))
		assert.Equal(t, 5, e.Lines()[0].Quantity)
	})

	t.Run("RejectsZeroAndNegative", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 2, Customization{}))

		assert.ErrorIs(t, e.UpdateQuantity(sourdough.ID, 0), ErrInvalidQuantity)
		assert.ErrorIs(t, e.UpdateQuantity(sourdough.ID, -3), ErrInvalidQuantity)
		assert.Equal(t, 2, e.Lines()[0].Quantity)
	})
}

func TestSubtotal(t *testing.T) {
	t.Run("SumsLines", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 2, Customization{}))  // 1300
		require.NoError(t, e.AddItem(croissant, 3, Customization{})) // 1185
		assert.Equal(t, money.Cents(2485), e.Subtotal())
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		a := NewEngine()
		require.NoError(t, a.AddItem(sourdough, 1, Customization{}))
		require.NoError(t, a.AddItem(croissant, 2, Customization{}))
		require.NoError(t, a.AddItem(sourdough, 1, Customization{}))

		b := NewEngine()
		require.NoError(t, b.AddItem(croissant, 1, Customization{}))
		require.NoError(t, b.AddItem(sourdough, 2, Customization{}))
		require.NoError(t, b.AddItem(croissant, 1, Customization{}))

		assert.Equal(t, a.Subtotal(), b.Subtotal())
	})

	t.Run("GiftSurcharges", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 1, Customization{
			Gift: &Gift{Message: "happy birthday", Packaging: PackagingPremium},
		}))
		require.NoError(t, e.AddItem(croissant, 1, Customization{
			Gift: &Gift{Packaging: PackagingDeluxe},
		}))
		// 650 + 500 + 395 + 1000
		assert.Equal(t, money.Cents(2545), e.Subtotal())
	})

	t.Run("StandardWrapAddsNothing", func(t *testing.T) {
		e := NewEngine()
		require.NoError(t, e.AddItem(sourdough, 1, Customization{
			Gift: &Gift{Message: "enjoy", Packaging: PackagingStandard},
		}))
		assert.Equal(t, money.Cents(650), e.Subtotal())
	})
}

func TestFreeze(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.AddItem(sourdough, 1, Customization{}))
	e.Freeze()

	assert.ErrorIs(t, e.AddItem(croissant, 1, Customization{}), ErrCartFrozen)
	assert.ErrorIs(t, e.UpdateQuantity(sourdough.ID, 3), ErrCartFrozen)
	assert.ErrorIs(t, e.RemoveItem(sourdough.ID), ErrCartFrozen)
	assert.Len(t, e.Lines(), 1)

	e.Thaw()
	assert.NoError(t, e.UpdateQuantity(sourdough.ID, 3))
}

func TestClear(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.AddItem(sourdough, 2, Customization{}))
	e.Freeze()
	e.Clear()

	assert.True(t, e.IsEmpty())
	assert.Equal(t, money.Cents(0), e.Subtotal())
	// clear lifts the freeze for the next session state
	assert.NoError(t, e.AddItem(croissant, 1, Customization{}))
}
