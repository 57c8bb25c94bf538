package domain

import (
	"time"

	"github.com/google/uuid"

	"movearena-pos/internal/money"
)

// StockEntryKind classifies a stock ledger movement
type StockEntryKind string

const (
	StockEntrada StockEntryKind = "entrada"
	StockSaida   StockEntryKind = "saida"
	StockAjuste  StockEntryKind = "ajuste"
)

// StockEntry is an audit record of one inventory change. Quantity is the
// signed delta actually applied to the product's stock.
type StockEntry struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Date        time.Time      `json:"date" db:"date"`
	ProductName string         `json:"product_name" db:"product_name"`
	Kind        StockEntryKind `json:"kind" db:"kind"`
	Quantity    int            `json:"quantity" db:"quantity"`
	Reason      string         `json:"reason" db:"reason"`
}

// Expense is a cash outflow recorded against the open cashier session
type Expense struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Date        time.Time   `json:"date" db:"date"`
	Description string      `json:"description" db:"description"`
	Amount      money.Cents `json:"amount_cents" db:"amount_cents"`
	Category    string      `json:"category" db:"category"`
	Operator    string      `json:"operator" db:"operator"`
}

// CashierSession is a bounded period of operation used for end-of-shift
// reconciliation. At most one session has a nil ClosedAt at any time.
type CashierSession struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	OpenedAt       time.Time    `json:"opened_at" db:"opened_at"`
	OpeningBalance money.Cents  `json:"opening_balance_cents" db:"opening_balance_cents"`
	ClosedAt       *time.Time   `json:"closed_at,omitempty" db:"closed_at"`
	FinalBalance   *money.Cents `json:"final_balance_cents,omitempty" db:"final_balance_cents"`
}

// Open reports whether the session is still open
func (s CashierSession) Open() bool {
	return s.ClosedAt == nil
}

// Customer is a known customer kept for delivery convenience
type Customer struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Name    string    `json:"name" db:"name"`
	Phone   string    `json:"phone" db:"phone"`
	Address string    `json:"address" db:"address"`
}
