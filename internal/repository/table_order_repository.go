package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"movearena-pos/internal/domain"
)

var (
	ErrTableOrderNotFound = errors.New("table order not found")
	ErrTableAlreadyOpen   = errors.New("table already has an open order")
)

// TableOrderRepository defines the interface for open table orders
type TableOrderRepository interface {
	Create(ctx context.Context, order *domain.TableOrder) error
	Save(ctx context.Context, order *domain.TableOrder) error
	Delete(ctx context.Context, tableNumber string) error
	FindByTable(ctx context.Context, tableNumber string) (*domain.TableOrder, error)
	List(ctx context.Context) ([]*domain.TableOrder, error)
}

type tableOrderRepository struct {
	db *sql.DB
}

// NewTableOrderRepository creates a new instance of TableOrderRepository
func NewTableOrderRepository(db *sql.DB) TableOrderRepository {
	return &tableOrderRepository{db: db}
}

// Create opens a table with an empty (or pre-filled) cart
func (r *tableOrderRepository) Create(ctx context.Context, order *domain.TableOrder) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode table order items: %w", err)
	}

	query := `
		INSERT INTO table_orders (table_number, items, customer_name, customer_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		order.TableNumber,
		items,
		order.CustomerName,
		order.CustomerPhone,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "table_orders_pkey") {
			return ErrTableAlreadyOpen
		}
		return fmt.Errorf("failed to create table order: %w", err)
	}

	return nil
}

// Save replaces the cart and customer fields held against the table
func (r *tableOrderRepository) Save(ctx context.Context, order *domain.TableOrder) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode table order items: %w", err)
	}

	query := `
		UPDATE table_orders
		SET items = $2, customer_name = $3, customer_phone = $4, updated_at = $5
		WHERE table_number = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		order.TableNumber,
		items,
		order.CustomerName,
		order.CustomerPhone,
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save table order: %w", err)
	}

	return requireRowsAffected(result, ErrTableOrderNotFound)
}

// Delete frees the table
func (r *tableOrderRepository) Delete(ctx context.Context, tableNumber string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM table_orders WHERE table_number = $1`, tableNumber)
	if err != nil {
		return fmt.Errorf("failed to delete table order: %w", err)
	}

	return requireRowsAffected(result, ErrTableOrderNotFound)
}

func scanTableOrder(row interface{ Scan(...any) error }) (*domain.TableOrder, error) {
	order := &domain.TableOrder{}
	var items []byte
	err := row.Scan(
		&order.TableNumber,
		&items,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode table order items: %w", err)
	}
	return order, nil
}

// FindByTable retrieves the open order for one table
func (r *tableOrderRepository) FindByTable(ctx context.Context, tableNumber string) (*domain.TableOrder, error) {
	query := `
		SELECT table_number, items, customer_name, customer_phone, created_at, updated_at
		FROM table_orders
		WHERE table_number = $1
	`

	order, err := scanTableOrder(r.db.QueryRowContext(ctx, query, tableNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableOrderNotFound
		}
		return nil, fmt.Errorf("failed to find table order: %w", err)
	}

	return order, nil
}

// List retrieves every open table order
func (r *tableOrderRepository) List(ctx context.Context) ([]*domain.TableOrder, error) {
	query := `
		SELECT table_number, items, customer_name, customer_phone, created_at, updated_at
		FROM table_orders
		ORDER BY table_number ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list table orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.TableOrder{}
	for rows.Next() {
		order, err := scanTableOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table orders: %w", err)
	}

	return orders, nil
}
