// Package cart implements the order-in-progress aggregate: an ordered
// list of line items with merge-on-add for catalog products and derived
// totals only, never accumulator state.
package cart

import (
	"errors"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
	"movearena-pos/internal/pricing"
)

var (
	ErrIndexOutOfRange = errors.New("cart index out of range")
	ErrNotCustom       = errors.New("item is not a custom line")
)

// Cart is the unsettled collection of line items for the order being built
type Cart struct {
	items []domain.CartItem
}

// New returns an empty cart
func New() *Cart {
	return &Cart{}
}

// FromItems rebuilds a cart from a stored snapshot (draft store, table order)
func FromItems(items []domain.CartItem) *Cart {
	c := &Cart{}
	c.items = append(c.items, items...)
	return c
}

// AddProduct adds one unit of a catalog product. An existing non-custom
// line for the same product is merged by incrementing its quantity.
func (c *Cart) AddProduct(p domain.Product) {
	for i := range c.items {
		if !c.items[i].IsCustom && c.items[i].ID == p.ID.String() {
			c.items[i].Quantity++
			return
		}
	}

	productID := p.ID
	c.items = append(c.items, domain.CartItem{
		ID:        p.ID.String(),
		ProductID: &productID,
		Name:      p.Name,
		Price:     p.Price,
		Cost:      p.Cost,
		Quantity:  1,
		IsCustom:  false,
	})
}

// AddCustomItem appends a composed line. Custom lines are never merged,
// even with identical composition.
func (c *Cart) AddCustomItem(item domain.CartItem) error {
	if !item.IsCustom {
		return ErrNotCustom
	}
	c.items = append(c.items, item)
	return nil
}

// ChangeQuantity applies a delta to the line at index. A resulting
// quantity of zero or below removes the line entirely.
func (c *Cart) ChangeQuantity(index, delta int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items[index].Quantity += delta
	if c.items[index].Quantity <= 0 {
		c.items = append(c.items[:index], c.items[index+1:]...)
	}
	return nil
}

// RemoveItem deletes the line at index unconditionally
func (c *Cart) RemoveItem(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the current lines in order
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Subtotal is the sum of line totals
func (c *Cart) Subtotal() money.Cents {
	return pricing.Subtotal(c.items)
}

// Total is the discounted subtotal plus delivery fee for the given order
// shape; derivable from cart contents alone
func (c *Cart) Total(d domain.Discount, orderType domain.OrderType, deliveryFee money.Cents) money.Cents {
	return pricing.GrandTotal(c.items, d, orderType, deliveryFee)
}
