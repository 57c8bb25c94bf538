package domain

import (
	"time"

	"github.com/google/uuid"

	"movearena-pos/internal/money"
)

// OrderType distinguishes how an order is fulfilled
type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeTable    OrderType = "table"
)

// PaymentMethod is the settlement payment method
type PaymentMethod string

const (
	PaymentMoney  PaymentMethod = "money"
	PaymentPix    PaymentMethod = "pix"
	PaymentDebit  PaymentMethod = "debit"
	PaymentCredit PaymentMethod = "credit"
)

// DiscountKind selects how a cart discount is applied
type DiscountKind string

const (
	DiscountNone    DiscountKind = ""
	DiscountFixed   DiscountKind = "fixed"
	DiscountPercent DiscountKind = "percent"
)

// Discount is an optional cart-level price modifier. For fixed discounts
// Value is an amount in cents; for percent discounts it is a whole
// percentage 0-100.
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value int64        `json:"value"`
}

// ExtraSelection is one priced extra ingredient on a composed item
type ExtraSelection struct {
	Key       string      `json:"key"`
	Name      string      `json:"name"`
	UnitPrice money.Cents `json:"unit_price_cents"`
	Quantity  int         `json:"quantity"`
}

// Composition is the structured record of a composed custom item. It is
// persisted alongside the cart line so analytics never have to parse the
// display text back.
type Composition struct {
	Size      string           `json:"size"`
	SizePrice money.Cents      `json:"size_price_cents"`
	Meat      string           `json:"meat,omitempty"`
	Cheeses   []string         `json:"cheeses,omitempty"`
	Salads    []string         `json:"salads,omitempty"`
	Sauces    []string         `json:"sauces,omitempty"`
	Extras    []ExtraSelection `json:"extras,omitempty"`
}

// CartItem is one line of an in-progress or settled order. Catalog lines
// carry a ProductID and merge on repeated adds; custom lines carry a
// synthetic ID plus a Composition and never merge.
type CartItem struct {
	ID          string       `json:"id"`
	ProductID   *uuid.UUID   `json:"product_id,omitempty"`
	Name        string       `json:"name"`
	Price       money.Cents  `json:"price_cents"`
	Cost        money.Cents  `json:"cost_cents"`
	Quantity    int          `json:"quantity"`
	Observation string       `json:"observation"`
	IsCustom    bool         `json:"is_custom"`
	Composition *Composition `json:"composition,omitempty"`
}

// Sale is the immutable settlement record produced by checkout
type Sale struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Date          time.Time     `json:"date" db:"date"`
	Customer      string        `json:"customer" db:"customer"`
	Phone         string        `json:"phone" db:"phone"`
	Address       string        `json:"address" db:"address"`
	OrderType     OrderType     `json:"order_type" db:"order_type"`
	DeliveryFee   money.Cents   `json:"delivery_fee_cents" db:"delivery_fee_cents"`
	Items         []CartItem    `json:"items" db:"items"`
	Subtotal      money.Cents   `json:"subtotal_cents" db:"subtotal_cents"`
	Discount      Discount      `json:"discount" db:"discount"`
	Total         money.Cents   `json:"total_cents" db:"total_cents"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	Observation   string        `json:"observation" db:"observation"`
	Operator      string        `json:"operator" db:"operator"`
}

// TableOrder is a cart held open against a table until settled or abandoned
type TableOrder struct {
	TableNumber   string     `json:"table_number" db:"table_number"`
	Items         []CartItem `json:"items" db:"items"`
	CustomerName  string     `json:"customer_name" db:"customer_name"`
	CustomerPhone string     `json:"customer_phone" db:"customer_phone"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
