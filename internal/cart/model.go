package cart

import (
	"strconv"

	"crumbline-be/internal/money"
)

type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)

type Packaging string

const (
	PackagingStandard Packaging = "STANDARD"
	PackagingPremium  Packaging = "PREMIUM"
	PackagingDeluxe   Packaging = "DELUXE"
)

// Surcharge is the per-line gift wrap fee added on top of the item price.
func (p Packaging) Surcharge() money.Cents {
	switch p {
	case PackagingPremium:
		return 500
	case PackagingDeluxe:
		return 1000
	default:
		return 0
	}
}

type Gift struct {
	Message   string
	Packaging Packaging
}

type Customization struct {
	Size                Size
	SpecialInstructions string
	Gift                *Gift
}

// Line is one cart entry. UnitPrice is captured when the product is first
// added; later catalog price changes never reach lines already in the cart.
type Line struct {
	ProductID     int
	ProductName   string
	UnitPrice     money.Cents
	Quantity      int
	Customization Customization
}

// SurchargeCents is the gift packaging fee for this line, zero without a
// gift or with standard wrap.
func (l Line) SurchargeCents() money.Cents {
	if l.Customization.Gift == nil {
		return 0
	}
	return l.Customization.Gift.Packaging.Surcharge()
}

// LineTotal is unit price times quantity plus the gift surcharge.
func (l Line) LineTotal() money.Cents {
	return l.UnitPrice*money.Cents(l.Quantity) + l.SurchargeCents()
}

// mergeKey decides which existing line an AddItem call folds into. The
// storefront merges purely by product id: adding the same product twice
// with different customizations increments the first line and keeps its
// customization. Keying by customization as well would give each variant
// its own line; that is a one-line change here and nowhere else.
func mergeKey(productID int, _ Customization) string {
	return strconv.Itoa(productID)
}
