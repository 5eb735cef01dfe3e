package graph

import (
	"fmt"
	"time"

	"crumbline-be/internal/cart"
	"crumbline-be/internal/catalog"
	"crumbline-be/internal/checkout"
	"crumbline-be/internal/graph/model"
	"crumbline-be/internal/pricing"
)

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func mapProduct(p catalog.Product) *model.Product {
	allergens := p.Allergens
	if allergens == nil {
		allergens = []string{}
	}
	return &model.Product{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.PriceCents.Float64(),
		IsVegan:      p.IsVegan,
		IsGlutenFree: p.IsGlutenFree,
		Allergens:    allergens,
		Rating:       p.Rating,
	}
}

func mapLine(l cart.Line) *model.CartLine {
	out := &model.CartLine{
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		UnitPrice:   l.UnitPrice.Float64(),
		Quantity:    l.Quantity,
		LineTotal:   l.LineTotal().Float64(),
	}
	if l.Customization.Size != "" {
		out.Size = strPtr(string(l.Customization.Size))
	}
	if l.Customization.SpecialInstructions != "" {
		out.SpecialInstructions = strPtr(l.Customization.SpecialInstructions)
	}
	if g := l.Customization.Gift; g != nil {
		out.GiftMessage = strPtr(g.Message)
		out.GiftPackaging = strPtr(string(g.Packaging))
	}
	return out
}

func mapTotals(t pricing.Totals) *model.Totals {
	return &model.Totals{
		Subtotal:    t.Subtotal.Float64(),
		Discount:    t.Discount.Float64(),
		Tax:         t.Tax.Float64(),
		DeliveryFee: t.DeliveryFee.Float64(),
		Total:       t.Total.Float64(),
	}
}

func mapCartView(flow *checkout.Flow) *model.CartView {
	lines := flow.Lines()
	out := &model.CartView{
		Lines:  make([]*model.CartLine, 0, len(lines)),
		Totals: mapTotals(flow.Totals()),
		State:  string(flow.State()),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, mapLine(l))
	}
	if applied := flow.AppliedPromo(); applied != nil {
		out.PromoCode = strPtr(applied.Code)
	}
	if n := flow.OrderNumber(); n != "" {
		out.OrderNumber = strPtr(n)
	}
	return out
}

func mapOrderContext(in model.OrderContextInput) (checkout.OrderContext, error) {
	oc := checkout.OrderContext{
		OrderType:      pricing.OrderType(in.OrderType),
		DeliveryOption: pricing.DeliveryStandard,
	}
	if in.DeliveryOption != nil {
		oc.DeliveryOption = pricing.DeliveryOption(*in.DeliveryOption)
	}
	if in.DeliveryDate != nil && *in.DeliveryDate != "" {
		day, err := time.Parse("2006-01-02", *in.DeliveryDate)
		if err != nil {
			return checkout.OrderContext{}, fmt.Errorf("invalid delivery date %q: %w", *in.DeliveryDate, err)
		}
		oc.DeliveryDate = day
	}
	if in.DeliveryTime != nil {
		oc.DeliveryTime = *in.DeliveryTime
	}
	if in.DeliveryAddress != nil {
		oc.DeliveryAddress = *in.DeliveryAddress
	}
	return oc, nil
}

// mapCustomization builds the closed customization variant from the loose
// GraphQL input, defaulting size to medium and wrap to standard.
func mapCustomization(in *model.CustomizationInput) cart.Customization {
	c := cart.Customization{Size: cart.SizeMedium}
	if in == nil {
		return c
	}
	if in.Size != nil {
		c.Size = cart.Size(*in.Size)
	}
	if in.SpecialInstructions != nil {
		c.SpecialInstructions = *in.SpecialInstructions
	}
	if in.GiftMessage != nil || in.GiftPackaging != nil {
		g := &cart.Gift{Packaging: cart.PackagingStandard}
		if in.GiftMessage != nil {
			g.Message = *in.GiftMessage
		}
		if in.GiftPackaging != nil {
			g.Packaging = cart.Packaging(*in.GiftPackaging)
		}
		c.Gift = g
	}
	return c
}
