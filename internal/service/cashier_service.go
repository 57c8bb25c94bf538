package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoOpenSession = errors.New("no cashier session is open")
)

// Balance is the reconciliation view of the open session: opening amount
// plus sales by payment method since open, minus expenses since open.
type Balance struct {
	Session       *domain.CashierSession               `json:"session"`
	SalesByMethod map[domain.PaymentMethod]money.Cents `json:"sales_by_method"`
	SalesTotal    money.Cents                          `json:"sales_total_cents"`
	Expenses      money.Cents                          `json:"expenses_cents"`
	Total         money.Cents                          `json:"total_cents"`
}

// CashierService manages the open/close lifecycle of cashier sessions
// and computes their running balance
type CashierService interface {
	Open(ctx context.Context, openingBalance money.Cents) (*domain.CashierSession, error)
	RunningBalance(ctx context.Context) (*Balance, error)
	Close(ctx context.Context) (*domain.CashierSession, error)
	Current(ctx context.Context) (*domain.CashierSession, error)
	History(ctx context.Context) ([]*domain.CashierSession, error)
}

type cashierService struct {
	sessions repository.CashierSessionRepository
	sales    repository.SaleRepository
	expenses repository.ExpenseRepository
	logger   *zap.Logger
}

// NewCashierService creates a new instance of CashierService
func NewCashierService(
	sessions repository.CashierSessionRepository,
	sales repository.SaleRepository,
	expenses repository.ExpenseRepository,
	logger *zap.Logger,
) CashierService {
	return &cashierService{
		sessions: sessions,
		sales:    sales,
		expenses: expenses,
		logger:   logger,
	}
}

// Open starts a session with the given opening balance. At most one
// session may be open system-wide.
func (s *cashierService) Open(ctx context.Context, openingBalance money.Cents) (*domain.CashierSession, error) {
	_, err := s.sessions.FindOpen(ctx)
	if err == nil {
		return nil, repository.ErrSessionAlreadyOpen
	}
	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check for open session: %w", err)
	}

	session := &domain.CashierSession{
		ID:             uuid.New(),
		OpenedAt:       time.Now().UTC(),
		OpeningBalance: openingBalance,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to open cashier session: %w", err)
	}

	s.logger.Info("Cashier session opened",
		zap.String("session_id", session.ID.String()),
		zap.Int64("opening_cents", int64(openingBalance)),
	)

	return session, nil
}

// RunningBalance computes opening + sales since open - expenses since open
func (s *cashierService) RunningBalance(ctx context.Context) (*Balance, error) {
	session, err := s.sessions.FindOpen(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}

	byMethod, err := s.sales.TotalsByMethodSince(ctx, session.OpenedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to total sales: %w", err)
	}

	var salesTotal money.Cents
	for _, v := range byMethod {
		salesTotal += v
	}

	expenses, err := s.expenses.SumSince(ctx, session.OpenedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to total expenses: %w", err)
	}

	return &Balance{
		Session:       session,
		SalesByMethod: byMethod,
		SalesTotal:    salesTotal,
		Expenses:      expenses,
		Total:         session.OpeningBalance + salesTotal - expenses,
	}, nil
}

// Close computes the balance at this moment, persists it with the
// closing timestamp, and ends the session
func (s *cashierService) Close(ctx context.Context) (*domain.CashierSession, error) {
	balance, err := s.RunningBalance(ctx)
	if err != nil {
		return nil, err
	}

	closedAt := time.Now().UTC()
	if err := s.sessions.Close(ctx, balance.Session.ID, closedAt, balance.Total); err != nil {
		return nil, fmt.Errorf("failed to close cashier session: %w", err)
	}

	session := balance.Session
	session.ClosedAt = &closedAt
	final := balance.Total
	session.FinalBalance = &final

	s.logger.Info("Cashier session closed",
		zap.String("session_id", session.ID.String()),
		zap.Int64("final_cents", int64(final)),
	)

	return session, nil
}

// Current returns the open session, or ErrNoOpenSession
func (s *cashierService) Current(ctx context.Context) (*domain.CashierSession, error) {
	session, err := s.sessions.FindOpen(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, err
	}
	return session, nil
}

// History lists past and present sessions, newest first
func (s *cashierService) History(ctx context.Context) ([]*domain.CashierSession, error) {
	return s.sessions.List(ctx)
}
