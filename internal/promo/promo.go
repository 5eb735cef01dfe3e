package promo

import (
	"errors"
	"strings"

	"crumbline-be/internal/money"
)

var (
	ErrInvalidCode = errors.New("invalid promo code")
	ErrMinSubtotal = errors.New("order subtotal below promo minimum")
)

// Promo is one row of the fixed promotion table. DiscountBP is the
// discount in basis points (1000 = 10%). MinSubtotal, when non-zero, is
// enforced at validation; the current table leaves it zero everywhere,
// including SAVE15 whose description advertises a floor the storefront has
// never checked.
type Promo struct {
	Code         string
	DiscountBP   int64
	FreeShipping bool
	MinSubtotal  money.Cents
	Description  string
}

// Applied is the promo currently attached to a session. At most one is
// active; validating a new code replaces it.
type Applied struct {
	Code         string
	DiscountBP   int64
	FreeShipping bool
	Description  string
}

// Table holds the available promotions keyed by upper-cased code.
type Table struct {
	promos map[string]Promo
}

// DefaultTable is the storefront's promotion set.
func DefaultTable() *Table {
	return NewTable([]Promo{
		{Code: "WELCOME10", DiscountBP: 1000, Description: "10% off your first order"},
		{Code: "SAVE15", DiscountBP: 1500, Description: "15% off orders over $50"},
		{Code: "BDAY20", DiscountBP: 2000, Description: "20% off birthday cakes and more"},
		{Code: "FREESHIP", FreeShipping: true, Description: "Free delivery on your order"},
	})
}

func NewTable(promos []Promo) *Table {
	t := &Table{promos: make(map[string]Promo, len(promos))}
	for _, p := range promos {
		t.promos[strings.ToUpper(p.Code)] = p
	}
	return t
}

// Validate looks the code up case-insensitively with an exact match. On
// success it returns the promo to apply; the caller replaces any
// previously applied promo with it, never stacks.
func (t *Table) Validate(code string, subtotal money.Cents) (*Applied, error) {
	p, ok := t.promos[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, ErrInvalidCode
	}
	if p.MinSubtotal > 0 && subtotal < p.MinSubtotal {
		return nil, ErrMinSubtotal
	}

	return &Applied{
		Code:         p.Code,
		DiscountBP:   p.DiscountBP,
		FreeShipping: p.FreeShipping,
		Description:  p.Description,
	}, nil
}
