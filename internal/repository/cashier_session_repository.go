package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound    = errors.New("cashier session not found")
	ErrSessionAlreadyOpen = errors.New("a cashier session is already open")
)

// CashierSessionRepository defines the interface for cashier session data
// access. The open-session uniqueness is also enforced by a partial
// unique index on (closed_at IS NULL).
type CashierSessionRepository interface {
	Create(ctx context.Context, session *domain.CashierSession) error
	FindOpen(ctx context.Context) (*domain.CashierSession, error)
	Close(ctx context.Context, id uuid.UUID, closedAt time.Time, finalBalance money.Cents) error
	List(ctx context.Context) ([]*domain.CashierSession, error)
}

type cashierSessionRepository struct {
	db *sql.DB
}

// NewCashierSessionRepository creates a new instance of CashierSessionRepository
func NewCashierSessionRepository(db *sql.DB) CashierSessionRepository {
	return &cashierSessionRepository{db: db}
}

// Create opens a new session. A unique-violation on the open-session
// index maps to ErrSessionAlreadyOpen.
func (r *cashierSessionRepository) Create(ctx context.Context, session *domain.CashierSession) error {
	query := `
		INSERT INTO cashier_sessions (id, opened_at, opening_balance_cents, closed_at, final_balance_cents)
		VALUES ($1, $2, $3, NULL, NULL)
	`

	_, err := r.db.ExecContext(ctx, query, session.ID, session.OpenedAt, session.OpeningBalance)
	if err != nil {
		if strings.Contains(err.Error(), "cashier_sessions_open_idx") {
			return ErrSessionAlreadyOpen
		}
		return fmt.Errorf("failed to open cashier session: %w", err)
	}

	return nil
}

// FindOpen retrieves the single session with no closing timestamp
func (r *cashierSessionRepository) FindOpen(ctx context.Context) (*domain.CashierSession, error) {
	query := `
		SELECT id, opened_at, opening_balance_cents, closed_at, final_balance_cents
		FROM cashier_sessions
		WHERE closed_at IS NULL
	`

	session := &domain.CashierSession{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&session.ID,
		&session.OpenedAt,
		&session.OpeningBalance,
		&session.ClosedAt,
		&session.FinalBalance,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find open cashier session: %w", err)
	}

	return session, nil
}

// Close stamps the session with its closing time and final balance
func (r *cashierSessionRepository) Close(ctx context.Context, id uuid.UUID, closedAt time.Time, finalBalance money.Cents) error {
	query := `
		UPDATE cashier_sessions
		SET closed_at = $2, final_balance_cents = $3
		WHERE id = $1 AND closed_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, closedAt, finalBalance)
	if err != nil {
		return fmt.Errorf("failed to close cashier session: %w", err)
	}

	return requireRowsAffected(result, ErrSessionNotFound)
}

// List retrieves all sessions, newest first
func (r *cashierSessionRepository) List(ctx context.Context) ([]*domain.CashierSession, error) {
	query := `
		SELECT id, opened_at, opening_balance_cents, closed_at, final_balance_cents
		FROM cashier_sessions
		ORDER BY opened_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashier sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*domain.CashierSession{}
	for rows.Next() {
		session := &domain.CashierSession{}
		err := rows.Scan(
			&session.ID,
			&session.OpenedAt,
			&session.OpeningBalance,
			&session.ClosedAt,
			&session.FinalBalance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cashier session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cashier sessions: %w", err)
	}

	return sessions, nil
}
