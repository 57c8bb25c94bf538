// Package receipt renders a printable representation of a cart or sale:
// plain text for raw thermal output and a minimal HTML document sized for
// 58mm paper. Rendering is a pure function of the order snapshot.
package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
	"movearena-pos/internal/pricing"
)

// Order is the receipt-shaped view of a live cart or finalized sale
type Order struct {
	Number      string
	Date        time.Time
	Customer    string
	Phone       string
	Address     string
	Observation string
	OrderType   domain.OrderType
	TableNumber string
	Items       []domain.CartItem
	Subtotal    money.Cents
	DeliveryFee money.Cents
	Total       money.Cents
}

// OrderNumber derives the short order number from a timestamp, keeping
// the original scheme of the last six digits of unix milliseconds
func OrderNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) <= 6 {
		return ms
	}
	return ms[len(ms)-6:]
}

// FromSale builds the receipt view of a settled sale
func FromSale(s domain.Sale) Order {
	return Order{
		Number:      OrderNumber(s.Date),
		Date:        s.Date,
		Customer:    s.Customer,
		Phone:       s.Phone,
		Address:     s.Address,
		Observation: s.Observation,
		OrderType:   s.OrderType,
		Items:       s.Items,
		Subtotal:    s.Subtotal,
		DeliveryFee: s.DeliveryFee,
		Total:       s.Total,
	}
}

// FromCart builds the receipt view of a live cart before settlement
func FromCart(items []domain.CartItem, d domain.Discount, orderType domain.OrderType, deliveryFee money.Cents, now time.Time) Order {
	fee := money.Cents(0)
	if orderType == domain.OrderTypeDelivery {
		fee = deliveryFee
	}
	return Order{
		Number:      OrderNumber(now),
		Date:        now,
		OrderType:   orderType,
		Items:       items,
		Subtotal:    pricing.Subtotal(items),
		DeliveryFee: fee,
		Total:       pricing.GrandTotal(items, d, orderType, deliveryFee),
	}
}

func (o Order) typeLabel() string {
	switch {
	case o.OrderType == domain.OrderTypeDelivery:
		return "ENTREGA"
	case o.TableNumber != "":
		return "MESA " + o.TableNumber
	default:
		return "RETIRADA"
	}
}

// Text renders the plain-text receipt
func (o Order) Text() string {
	var b strings.Builder

	customer := o.Customer
	if customer == "" {
		customer = "Cliente"
	}

	fmt.Fprintf(&b, "MOVEARENA\n")
	fmt.Fprintf(&b, "PEDIDO #%s\n", o.Number)
	fmt.Fprintf(&b, "%s\n", o.Date.Format("02/01/2006 15:04"))
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "Cliente: %s\n", customer)
	if o.Phone != "" {
		fmt.Fprintf(&b, "Tel: %s\n", o.Phone)
	}
	if o.OrderType == domain.OrderTypeDelivery && o.Address != "" {
		fmt.Fprintf(&b, "End: %s\n", o.Address)
	}
	fmt.Fprintf(&b, "Tipo: %s\n", o.typeLabel())
	if o.Observation != "" {
		fmt.Fprintf(&b, "Obs: %s\n", o.Observation)
	}
	b.WriteString("--------------------------------\n")

	for _, item := range o.Items {
		fmt.Fprintf(&b, "%dx %s\n", item.Quantity, item.Name)
		if item.Observation != "" {
			for _, line := range strings.Split(item.Observation, "\n") {
				fmt.Fprintf(&b, "   %s\n", line)
			}
		}
		fmt.Fprintf(&b, "   %s\n", pricing.LineTotal(item).BRL())
	}

	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", o.Subtotal.BRL())
	if o.DeliveryFee > 0 {
		fmt.Fprintf(&b, "Taxa entrega: %s\n", o.DeliveryFee.BRL())
	}
	fmt.Fprintf(&b, "TOTAL: %s\n", o.Total.BRL())
	b.WriteString("--------------------------------\n")
	b.WriteString("Obrigado pela preferencia!\n")
	b.WriteString("Volte sempre!\n")

	return b.String()
}
