package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"

	"github.com/google/uuid"
)

var (
	ErrSaleNotFound = errors.New("sale not found")
)

// SaleUpdate carries the editable fields of a settled sale. Nil fields
// are left untouched.
type SaleUpdate struct {
	Date          *time.Time
	Customer      *string
	Phone         *string
	Address       *string
	OrderType     *domain.OrderType
	PaymentMethod *domain.PaymentMethod
	Total         *money.Cents
	Observation   *string
}

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	Update(ctx context.Context, id uuid.UUID, update SaleUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	List(ctx context.Context, from, to *time.Time) ([]*domain.Sale, error)
	TotalsByMethodSince(ctx context.Context, since time.Time) (map[domain.PaymentMethod]money.Cents, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `id, date, customer, phone, address, order_type, delivery_fee_cents,
	items, subtotal_cents, discount_kind, discount_value, total_cents,
	payment_method, observation, operator`

// Create persists a settled sale; line items are stored as a JSONB snapshot
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("failed to encode sale items: %w", err)
	}

	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		sale.ID,
		sale.Date,
		sale.Customer,
		sale.Phone,
		sale.Address,
		sale.OrderType,
		sale.DeliveryFee,
		items,
		sale.Subtotal,
		sale.Discount.Kind,
		sale.Discount.Value,
		sale.Total,
		sale.PaymentMethod,
		sale.Observation,
		sale.Operator,
	)

	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	return nil
}

// Update edits the mutable reporting fields of a sale
func (r *saleRepository) Update(ctx context.Context, id uuid.UUID, update SaleUpdate) error {
	set := []string{}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Date != nil {
		add("date", *update.Date)
	}
	if update.Customer != nil {
		add("customer", *update.Customer)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.Address != nil {
		add("address", *update.Address)
	}
	if update.OrderType != nil {
		add("order_type", *update.OrderType)
	}
	if update.PaymentMethod != nil {
		add("payment_method", *update.PaymentMethod)
	}
	if update.Total != nil {
		add("total_cents", *update.Total)
	}
	if update.Observation != nil {
		add("observation", *update.Observation)
	}

	if len(set) == 0 {
		return nil
	}

	query := "UPDATE sales SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = $1"

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}

	return requireRowsAffected(result, ErrSaleNotFound)
}

// Delete removes a sale record
func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	return requireRowsAffected(result, ErrSaleNotFound)
}

func scanSale(row interface{ Scan(...any) error }) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var items []byte
	err := row.Scan(
		&sale.ID,
		&sale.Date,
		&sale.Customer,
		&sale.Phone,
		&sale.Address,
		&sale.OrderType,
		&sale.DeliveryFee,
		&items,
		&sale.Subtotal,
		&sale.Discount.Kind,
		&sale.Discount.Value,
		&sale.Total,
		&sale.PaymentMethod,
		&sale.Observation,
		&sale.Operator,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &sale.Items); err != nil {
		return nil, fmt.Errorf("failed to decode sale items: %w", err)
	}
	return sale, nil
}

// FindByID retrieves a sale by ID
func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`

	sale, err := scanSale(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID: %w", err)
	}

	return sale, nil
}

// List retrieves sales in reverse chronological order, optionally bounded
// by an inclusive from / exclusive to window
func (r *saleRepository) List(ctx context.Context, from, to *time.Time) ([]*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	args := []any{}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" WHERE date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += fmt.Sprintf(" AND date < $%d", len(args))
		} else {
			query += fmt.Sprintf(" WHERE date < $%d", len(args))
		}
	}
	query += " ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return sales, nil
}

// TotalsByMethodSince sums sale totals grouped by payment method for
// sales at or after the given instant; feeds the cashier running balance
func (r *saleRepository) TotalsByMethodSince(ctx context.Context, since time.Time) (map[domain.PaymentMethod]money.Cents, error) {
	query := `
		SELECT payment_method, COALESCE(SUM(total_cents), 0)
		FROM sales
		WHERE date >= $1
		GROUP BY payment_method
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales by method: %w", err)
	}
	defer rows.Close()

	totals := map[domain.PaymentMethod]money.Cents{}
	for rows.Next() {
		var method domain.PaymentMethod
		var total money.Cents
		if err := rows.Scan(&method, &total); err != nil {
			return nil, fmt.Errorf("failed to scan sales total: %w", err)
		}
		totals[method] = total
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales totals: %w", err)
	}

	return totals, nil
}
