// Package state holds the per-operator order draft: the cart being built
// plus the transient order fields that the original kept in browser
// storage. Drafts live behind a pluggable key-value store so tests run
// in memory and production uses Redis.
package state

import (
	"context"
	"errors"
	"sync"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
)

var ErrDraftNotFound = errors.New("order draft not found")

// OrderDraft is the savable snapshot of an order in progress
type OrderDraft struct {
	Items           []domain.CartItem    `json:"items"`
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	DeliveryAddress string               `json:"delivery_address"`
	OrderType       domain.OrderType     `json:"order_type"`
	DeliveryFee     money.Cents          `json:"delivery_fee_cents"`
	Discount        domain.Discount      `json:"discount"`
	Observation     string               `json:"observation"`
	TableNumber     string               `json:"table_number"`
}

// Store persists drafts keyed by operator identity
type Store interface {
	Load(ctx context.Context, operatorID string) (*OrderDraft, error)
	Save(ctx context.Context, operatorID string, draft *OrderDraft) error
	Clear(ctx context.Context, operatorID string) error
}

// MemoryStore is the in-memory Store used in tests and single-process
// deployments without Redis
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]OrderDraft
}

// NewMemoryStore creates an empty in-memory draft store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]OrderDraft)}
}

// Load retrieves the draft for an operator
func (s *MemoryStore) Load(_ context.Context, operatorID string) (*OrderDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.drafts[operatorID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	copied := draft
	copied.Items = append([]domain.CartItem(nil), draft.Items...)
	return &copied, nil
}

// Save stores the draft for an operator, replacing any previous one
func (s *MemoryStore) Save(_ context.Context, operatorID string, draft *OrderDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *draft
	copied.Items = append([]domain.CartItem(nil), draft.Items...)
	s.drafts[operatorID] = copied
	return nil
}

// Clear discards the operator's draft; clearing a missing draft is not
// an error
func (s *MemoryStore) Clear(_ context.Context, operatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, operatorID)
	return nil
}
