package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"movearena-pos/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrStockEntryNotFound = errors.New("stock entry not found")
)

// StockEntryRepository defines the interface for the stock audit ledger
type StockEntryRepository interface {
	Create(ctx context.Context, entry *domain.StockEntry) error
	Update(ctx context.Context, entry *domain.StockEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.StockEntry, error)
}

type stockEntryRepository struct {
	db *sql.DB
}

// NewStockEntryRepository creates a new instance of StockEntryRepository
func NewStockEntryRepository(db *sql.DB) StockEntryRepository {
	return &stockEntryRepository{db: db}
}

// Create appends one audit entry to the stock ledger
func (r *stockEntryRepository) Create(ctx context.Context, entry *domain.StockEntry) error {
	query := `
		INSERT INTO stock_history (id, date, product_name, kind, quantity, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Date,
		entry.ProductName,
		entry.Kind,
		entry.Quantity,
		entry.Reason,
	)

	if err != nil {
		return fmt.Errorf("failed to create stock entry: %w", err)
	}

	return nil
}

// Update edits an existing ledger entry; editing never re-applies the
// delta to product stock
func (r *stockEntryRepository) Update(ctx context.Context, entry *domain.StockEntry) error {
	query := `
		UPDATE stock_history
		SET date = $2, product_name = $3, kind = $4, quantity = $5, reason = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Date,
		entry.ProductName,
		entry.Kind,
		entry.Quantity,
		entry.Reason,
	)

	if err != nil {
		return fmt.Errorf("failed to update stock entry: %w", err)
	}

	return requireRowsAffected(result, ErrStockEntryNotFound)
}

// Delete removes a ledger entry without touching product stock
func (r *stockEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock entry: %w", err)
	}

	return requireRowsAffected(result, ErrStockEntryNotFound)
}

// List retrieves ledger entries, newest first
func (r *stockEntryRepository) List(ctx context.Context) ([]*domain.StockEntry, error) {
	query := `
		SELECT id, date, product_name, kind, quantity, reason
		FROM stock_history
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock entries: %w", err)
	}
	defer rows.Close()

	entries := []*domain.StockEntry{}
	for rows.Next() {
		entry := &domain.StockEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.Date,
			&entry.ProductName,
			&entry.Kind,
			&entry.Quantity,
			&entry.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock entries: %w", err)
	}

	return entries, nil
}
