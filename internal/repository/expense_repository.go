package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"

	"github.com/google/uuid"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Expense, error)
	SumSince(ctx context.Context, since time.Time) (money.Cents, error)
}

type expenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new instance of ExpenseRepository
func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create records a new expense
func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, date, description, amount_cents, category, operator)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		expense.ID,
		expense.Date,
		expense.Description,
		expense.Amount,
		expense.Category,
		expense.Operator,
	)

	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// Update replaces an expense's attributes
func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET date = $2, description = $3, amount_cents = $4, category = $5, operator = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		expense.ID,
		expense.Date,
		expense.Description,
		expense.Amount,
		expense.Category,
		expense.Operator,
	)

	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return requireRowsAffected(result, ErrExpenseNotFound)
}

// Delete removes an expense
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return requireRowsAffected(result, ErrExpenseNotFound)
}

// List retrieves all expenses, newest first
func (r *expenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	query := `
		SELECT id, date, description, amount_cents, category, operator
		FROM expenses
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	for rows.Next() {
		expense := &domain.Expense{}
		err := rows.Scan(
			&expense.ID,
			&expense.Date,
			&expense.Description,
			&expense.Amount,
			&expense.Category,
			&expense.Operator,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// SumSince totals expenses recorded at or after the given instant
func (r *expenseRepository) SumSince(ctx context.Context, since time.Time) (money.Cents, error) {
	var total money.Cents
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE date >= $1`, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
