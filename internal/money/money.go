package money

import "fmt"

// Cents is a monetary amount in integer cents. All pricing math in the
// service happens on this type so sums never accumulate binary rounding
// drift; values are only rendered as dollars at the presentation edge.
type Cents int64

// ApplyRate multiplies the amount by a rate expressed in basis points
// (800 = 8%), rounding half-up.
func (c Cents) ApplyRate(basisPoints int64) Cents {
	raw := int64(c) * basisPoints
	return Cents((raw + 5000) / 10000)
}

// Dollars renders the amount as a two-decimal dollar string, e.g. "97.20".
func (c Cents) Dollars() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float64 returns the amount in dollars for GraphQL Float fields.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}
