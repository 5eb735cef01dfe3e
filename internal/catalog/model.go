package catalog

import "crumbline-be/internal/money"

// Product is a purchasable bakery item. Rows are read-only from the
// storefront's perspective; price changes never touch carts that already
// hold the product (carts snapshot the unit price at add time).
type Product struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	PriceCents   money.Cents `json:"price_cents"`
	IsVegan      bool        `json:"is_vegan"`
	IsGlutenFree bool        `json:"is_gluten_free"`
	Allergens    []string    `json:"allergens"`
	Rating       float64     `json:"rating"`
}

type ListOptions struct {
	Category   *string
	VeganOnly  bool
	GlutenFree bool
}
