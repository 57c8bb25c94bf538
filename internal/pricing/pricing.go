// Package pricing contains the pure arithmetic for cart totals: line
// totals, subtotals, discount application and the grand total including
// the delivery fee.
package pricing

import (
	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
)

// LineTotal is unit price times quantity
func LineTotal(item domain.CartItem) money.Cents {
	return item.Price.Mul(item.Quantity)
}

// Subtotal sums line totals over all cart items
func Subtotal(items []domain.CartItem) money.Cents {
	var total money.Cents
	for _, item := range items {
		total += LineTotal(item)
	}
	return total
}

// ApplyDiscount applies a cart discount to a subtotal. Fixed discounts
// never drive the result below zero; percent discounts are a whole
// percentage 0-100 of the subtotal. Any other kind is the identity.
func ApplyDiscount(subtotal money.Cents, d domain.Discount) money.Cents {
	switch d.Kind {
	case domain.DiscountFixed:
		return (subtotal - money.Cents(d.Value)).ClampZero()
	case domain.DiscountPercent:
		pct := d.Value
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return subtotal - subtotal.Percent(pct)
	default:
		return subtotal
	}
}

// GrandTotal is the discounted subtotal plus the delivery fee. The fee
// only applies to delivery orders.
func GrandTotal(items []domain.CartItem, d domain.Discount, orderType domain.OrderType, deliveryFee money.Cents) money.Cents {
	total := ApplyDiscount(Subtotal(items), d)
	if orderType == domain.OrderTypeDelivery {
		total += deliveryFee
	}
	return total
}
