package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidExpense = errors.New("invalid expense")

// ExpenseService records cash outflows counted against the open session
type ExpenseService interface {
	Record(ctx context.Context, description string, amount money.Cents, category, operator string) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Expense, error)
}

type expenseService struct {
	expenses repository.ExpenseRepository
	logger   *zap.Logger
}

// NewExpenseService creates a new instance of ExpenseService
func NewExpenseService(expenses repository.ExpenseRepository, logger *zap.Logger) ExpenseService {
	return &expenseService{expenses: expenses, logger: logger}
}

func (s *expenseService) Record(ctx context.Context, description string, amount money.Cents, category, operator string) (*domain.Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}

	expense := &domain.Expense{
		ID:          uuid.New(),
		Date:        time.Now().UTC(),
		Description: description,
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Operator:    operator,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to record expense: %w", err)
	}

	s.logger.Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.Int64("amount_cents", int64(amount)),
	)
	return expense, nil
}

func (s *expenseService) Update(ctx context.Context, expense *domain.Expense) error {
	if strings.TrimSpace(expense.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	return s.expenses.Update(ctx, expense)
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.expenses.Delete(ctx, id)
}

func (s *expenseService) List(ctx context.Context) ([]*domain.Expense, error) {
	return s.expenses.List(ctx)
}
