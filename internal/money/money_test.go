package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRate(t *testing.T) {
	t.Run("EightPercentTax", func(t *testing.T) {
		// 8% of $90.00 = $7.20
		assert.Equal(t, Cents(720), Cents(9000).ApplyRate(800))
	})

	t.Run("TenPercentDiscount", func(t *testing.T) {
		assert.Equal(t, Cents(1000), Cents(10000).ApplyRate(1000))
	})

	t.Run("RoundsHalfUp", func(t *testing.T) {
		// 15% of $0.03 = 0.45 cents -> 0
		assert.Equal(t, Cents(0), Cents(3).ApplyRate(1500))
		// 10% of $0.05 = 0.5 cents -> 1
		assert.Equal(t, Cents(1), Cents(5).ApplyRate(1000))
	})

	t.Run("Zero", func(t *testing.T) {
		assert.Equal(t, Cents(0), Cents(0).ApplyRate(800))
	})
}

func TestDollars(t *testing.T) {
	assert.Equal(t, "97.20", Cents(9720).Dollars())
	assert.Equal(t, "0.05", Cents(5).Dollars())
	assert.Equal(t, "4.99", Cents(499).Dollars())
	assert.Equal(t, "-1.50", Cents(-150).Dollars())
}

func TestFloat64(t *testing.T) {
	assert.InDelta(t, 6.50, Cents(650).Float64(), 1e-9)
	assert.InDelta(t, 0.05, Cents(5).Float64(), 1e-9)
}
