package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newCashierFixture() (*mockSessionRepo, *mockSaleRepo, *mockExpenseRepo, CashierService) {
	sessions := newMockSessionRepo()
	sales := newMockSaleRepo()
	expenses := newMockExpenseRepo()
	svc := NewCashierService(sessions, sales, expenses, zap.NewNop())
	return sessions, sales, expenses, svc
}

func TestOpenRejectsSecondSession(t *testing.T) {
	_, _, _, svc := newCashierFixture()
	ctx := context.Background()

	if _, err := svc.Open(ctx, 10000); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Open(ctx, 5000); !errors.Is(err, repository.ErrSessionAlreadyOpen) {
		t.Fatalf("Expected ErrSessionAlreadyOpen, got %v", err)
	}
}

func TestRunningBalanceMath(t *testing.T) {
	_, sales, expenses, svc := newCashierFixture()
	ctx := context.Background()

	session, err := svc.Open(ctx, 10000)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	mustCreateSale := func(method domain.PaymentMethod, total money.Cents, date time.Time) {
		t.Helper()
		s := &domain.Sale{ID: uuid.New(), Date: date, Customer: "Cliente", PaymentMethod: method, Total: total}
		if err := sales.Create(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	mustCreateSale(domain.PaymentMoney, 5000, now)
	mustCreateSale(domain.PaymentPix, 3000, now)
	// Settled before the session opened; excluded from this shift
	mustCreateSale(domain.PaymentMoney, 9999, session.OpenedAt.Add(-time.Hour))

	if err := expenses.Create(ctx, &domain.Expense{ID: uuid.New(), Date: now, Description: "Gás", Amount: 2000}); err != nil {
		t.Fatal(err)
	}

	balance, err := svc.RunningBalance(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if balance.SalesTotal != 8000 {
		t.Errorf("Expected sales total 8000, got %d", balance.SalesTotal)
	}
	if balance.SalesByMethod[domain.PaymentMoney] != 5000 {
		t.Errorf("Expected 5000 in cash, got %d", balance.SalesByMethod[domain.PaymentMoney])
	}
	if balance.Expenses != 2000 {
		t.Errorf("Expected expenses 2000, got %d", balance.Expenses)
	}
	// 100.00 opening + 80.00 sales - 20.00 expenses
	if balance.Total != 16000 {
		t.Errorf("Expected total 16000, got %d", balance.Total)
	}
}

func TestCloseSnapshotsFinalBalance(t *testing.T) {
	sessions, sales, _, svc := newCashierFixture()
	ctx := context.Background()

	if _, err := svc.Open(ctx, 10000); err != nil {
		t.Fatal(err)
	}
	s := &domain.Sale{ID: uuid.New(), Date: time.Now().UTC(), Customer: "Cliente", PaymentMethod: domain.PaymentPix, Total: 4000}
	if err := sales.Create(ctx, s); err != nil {
		t.Fatal(err)
	}

	closed, err := svc.Close(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if closed.Open() {
		t.Error("Closed session must not report open")
	}
	if closed.FinalBalance == nil || *closed.FinalBalance != 14000 {
		t.Errorf("Expected final balance 14000, got %v", closed.FinalBalance)
	}

	// The slot is free again
	if _, err := sessions.FindOpen(ctx); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Errorf("Expected no open session after close, got %v", err)
	}
	if _, err := svc.Open(ctx, 500); err != nil {
		t.Errorf("Reopening after close must succeed: %v", err)
	}
}

func TestCurrentAndCloseWithoutOpenSession(t *testing.T) {
	_, _, _, svc := newCashierFixture()
	ctx := context.Background()

	if _, err := svc.Current(ctx); !errors.Is(err, ErrNoOpenSession) {
		t.Errorf("Expected ErrNoOpenSession from Current, got %v", err)
	}
	if _, err := svc.RunningBalance(ctx); !errors.Is(err, ErrNoOpenSession) {
		t.Errorf("Expected ErrNoOpenSession from RunningBalance, got %v", err)
	}
	if _, err := svc.Close(ctx); !errors.Is(err, ErrNoOpenSession) {
		t.Errorf("Expected ErrNoOpenSession from Close, got %v", err)
	}
}
