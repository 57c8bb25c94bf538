package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdjustmentKind selects how a manual stock adjustment is applied
type AdjustmentKind string

const (
	AdjustAdd    AdjustmentKind = "add"
	AdjustRemove AdjustmentKind = "remove"
	AdjustSet    AdjustmentKind = "set"
)

var ErrInvalidAdjustment = errors.New("invalid stock adjustment kind")

// InventoryService applies manual stock adjustments, writing exactly one
// signed audit entry per adjustment
type InventoryService interface {
	Adjust(ctx context.Context, productID uuid.UUID, quantity int, kind AdjustmentKind, reason string) error
	History(ctx context.Context) ([]*domain.StockEntry, error)
	UpdateEntry(ctx context.Context, entry *domain.StockEntry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

type inventoryService struct {
	products repository.ProductRepository
	stockLog repository.StockEntryRepository
	logger   *zap.Logger
}

// NewInventoryService creates a new instance of InventoryService
func NewInventoryService(
	products repository.ProductRepository,
	stockLog repository.StockEntryRepository,
	logger *zap.Logger,
) InventoryService {
	return &inventoryService{
		products: products,
		stockLog: stockLog,
		logger:   logger,
	}
}

// Adjust mutates a product's stock. "add" increments, "remove" decrements
// floored at zero, "set" replaces the value outright. Adjusting a product
// that no longer exists is a silent no-op: no ledger entry, no error.
func (s *inventoryService) Adjust(ctx context.Context, productID uuid.UUID, quantity int, kind AdjustmentKind, reason string) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Debug("Stock adjustment for missing product ignored",
				zap.String("product_id", productID.String()),
			)
			return nil
		}
		return fmt.Errorf("failed to load product for adjustment: %w", err)
	}

	var newStock int
	var entryKind domain.StockEntryKind
	var delta int

	switch kind {
	case AdjustAdd:
		newStock = product.Stock + quantity
		entryKind = domain.StockEntrada
		delta = quantity
	case AdjustRemove:
		newStock = product.Stock - quantity
		if newStock < 0 {
			newStock = 0
		}
		entryKind = domain.StockSaida
		delta = -quantity
	case AdjustSet:
		newStock = quantity
		entryKind = domain.StockAjuste
		delta = quantity - product.Stock
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAdjustment, kind)
	}

	if err := s.products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return fmt.Errorf("failed to apply stock adjustment: %w", err)
	}

	entry := &domain.StockEntry{
		ID:          uuid.New(),
		Date:        time.Now().UTC(),
		ProductName: product.Name,
		Kind:        entryKind,
		Quantity:    delta,
		Reason:      reason,
	}
	if err := s.stockLog.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record stock adjustment: %w", err)
	}

	s.logger.Info("Stock adjusted",
		zap.String("product", product.Name),
		zap.String("kind", string(kind)),
		zap.Int("delta", delta),
		zap.Int("new_stock", newStock),
	)

	return nil
}

// History returns the audit ledger, newest first
func (s *inventoryService) History(ctx context.Context) ([]*domain.StockEntry, error) {
	return s.stockLog.List(ctx)
}

// UpdateEntry edits a ledger entry without re-applying its delta
func (s *inventoryService) UpdateEntry(ctx context.Context, entry *domain.StockEntry) error {
	return s.stockLog.Update(ctx, entry)
}

// DeleteEntry removes a ledger entry without reversing the stock change
// it recorded
func (s *inventoryService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return s.stockLog.Delete(ctx, id)
}
