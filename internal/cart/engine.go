package cart

import (
	"crumbline-be/internal/catalog"
	"crumbline-be/internal/money"
)

// Engine owns the in-progress cart for a single visitor session. It is not
// safe for concurrent use on its own; the checkout flow that owns it
// serializes every mutation.
type Engine struct {
	lines  []*Line
	index  map[string]*Line
	frozen bool
}

func NewEngine() *Engine {
	return &Engine{index: make(map[string]*Line)}
}

// AddItem appends a new line snapshotting the product's current price, or
// folds into the existing line for the same merge key (quantity added,
// first customization kept).
func (e *Engine) AddItem(p catalog.Product, quantity int, c Customization) error {
	if e.frozen {
		return ErrCartFrozen
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	key := mergeKey(p.ID, c)
	if line, ok := e.index[key]; ok {
		line.Quantity += quantity
		return nil
	}

	line := &Line{
		ProductID:     p.ID,
		ProductName:   p.Name,
		UnitPrice:     p.PriceCents,
		Quantity:      quantity,
		Customization: c,
	}
	e.lines = append(e.lines, line)
	e.index[key] = line
	return nil
}

// RemoveItem deletes the product's line. Removing an absent product is a
// no-op.
func (e *Engine) RemoveItem(productID int) error {
	if e.frozen {
		return ErrCartFrozen
	}

	key := mergeKey(productID, Customization{})
	if _, ok := e.index[key]; !ok {
		return nil
	}
	delete(e.index, key)

	for i, line := range e.lines {
		if line.ProductID == productID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateQuantity sets the line's quantity. Quantities below one are
// rejected without touching the line; dropping a line goes through
// RemoveItem.
func (e *Engine) UpdateQuantity(productID, quantity int) error {
	if e.frozen {
		return ErrCartFrozen
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	line, ok := e.index[mergeKey(productID, Customization{})]
	if !ok {
		return nil
	}
	line.Quantity = quantity
	return nil
}

// Subtotal sums unit price times quantity plus gift surcharges across all
// lines.
func (e *Engine) Subtotal() money.Cents {
	var total money.Cents
	for _, line := range e.lines {
		total += line.LineTotal()
	}
	return total
}

// Lines returns a copy of the cart in first-add order.
func (e *Engine) Lines() []Line {
	out := make([]Line, 0, len(e.lines))
	for _, line := range e.lines {
		out = append(out, *line)
	}
	return out
}

func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

// Freeze blocks mutations while a submission is in flight so the snapshot
// sent to the backend matches what the customer is charged.
func (e *Engine) Freeze() {
	e.frozen = true
}

func (e *Engine) Thaw() {
	e.frozen = false
}

// Clear empties the cart and lifts any freeze. Called on successful order
// settlement.
func (e *Engine) Clear() {
	e.lines = nil
	e.index = make(map[string]*Line)
	e.frozen = false
}
