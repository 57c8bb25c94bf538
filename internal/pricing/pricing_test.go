package pricing

import (
	"testing"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func item(price money.Cents, qty int) domain.CartItem {
	return domain.CartItem{ID: "p", Name: "item", Price: price, Quantity: qty}
}

func TestGrandTotalEndToEnd(t *testing.T) {
	// 45.00 subtotal, 10% discount, 4.50 fee on delivery: 40.50 + 4.50
	items := []domain.CartItem{item(1500, 3)}
	d := domain.Discount{Kind: domain.DiscountPercent, Value: 10}

	total := GrandTotal(items, d, domain.OrderTypeDelivery, 450)
	if total != 4500 {
		t.Errorf("Expected 4500, got %d", total)
	}

	// Pickup ignores the delivery fee entirely
	total = GrandTotal(items, d, domain.OrderTypePickup, 450)
	if total != 4050 {
		t.Errorf("Expected 4050 for pickup, got %d", total)
	}
}

func TestApplyDiscountFixed(t *testing.T) {
	subtotal := money.Cents(3000)

	if got := ApplyDiscount(subtotal, domain.Discount{Kind: domain.DiscountFixed, Value: 500}); got != 2500 {
		t.Errorf("Expected 2500, got %d", got)
	}

	// Oversized fixed discounts clamp to zero, never negative
	if got := ApplyDiscount(subtotal, domain.Discount{Kind: domain.DiscountFixed, Value: 99999}); got != 0 {
		t.Errorf("Expected 0 for oversized discount, got %d", got)
	}
}

func TestApplyDiscountPercentClamps(t *testing.T) {
	subtotal := money.Cents(2000)

	if got := ApplyDiscount(subtotal, domain.Discount{Kind: domain.DiscountPercent, Value: 150}); got != 0 {
		t.Errorf("Expected 0 for >100%%, got %d", got)
	}
	if got := ApplyDiscount(subtotal, domain.Discount{Kind: domain.DiscountPercent, Value: -10}); got != 2000 {
		t.Errorf("Expected unchanged subtotal for negative percent, got %d", got)
	}
}

func TestProperty_SubtotalIsDerived(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("subtotal equals sum of line totals", prop.ForAll(
		func(prices []int64, quantities []int) bool {
			n := len(prices)
			if len(quantities) < n {
				n = len(quantities)
			}
			items := make([]domain.CartItem, 0, n)
			var expected money.Cents
			for i := 0; i < n; i++ {
				it := item(money.Cents(prices[i]), quantities[i])
				items = append(items, it)
				expected += money.Cents(prices[i]).Mul(quantities[i])
			}
			return Subtotal(items) == expected
		},
		gen.SliceOf(gen.Int64Range(0, 50000)),
		gen.SliceOf(gen.IntRange(1, 20)),
	))

	properties.Property("discounted total never exceeds subtotal and never goes negative", prop.ForAll(
		func(subtotalCents int64, kind int, value int64) bool {
			subtotal := money.Cents(subtotalCents)
			var d domain.Discount
			switch kind {
			case 0:
				d = domain.Discount{}
			case 1:
				d = domain.Discount{Kind: domain.DiscountFixed, Value: value}
			default:
				d = domain.Discount{Kind: domain.DiscountPercent, Value: value % 101}
			}
			got := ApplyDiscount(subtotal, d)
			return got >= 0 && got <= subtotal
		},
		gen.Int64Range(0, 1_000_000),
		gen.IntRange(0, 2),
		gen.Int64Range(0, 2_000_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
