package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/receipt"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SalesService is the reporting side of settled sales: listing, edits,
// deletion with inventory reversal, and ingredient analytics over the
// structured composition records.
type SalesService interface {
	List(ctx context.Context, from, to *time.Time) ([]*domain.Sale, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	Update(ctx context.Context, id uuid.UUID, update repository.SaleUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	IngredientPopularity(ctx context.Context, from, to *time.Time) (map[string]int, error)
}

type salesService struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	stockLog repository.StockEntryRepository
	logger   *zap.Logger
}

// NewSalesService creates a new instance of SalesService
func NewSalesService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	stockLog repository.StockEntryRepository,
	logger *zap.Logger,
) SalesService {
	return &salesService{
		sales:    sales,
		products: products,
		stockLog: stockLog,
		logger:   logger,
	}
}

func (s *salesService) List(ctx context.Context, from, to *time.Time) ([]*domain.Sale, error) {
	return s.sales.List(ctx, from, to)
}

func (s *salesService) Get(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	return s.sales.FindByID(ctx, id)
}

func (s *salesService) Update(ctx context.Context, id uuid.UUID, update repository.SaleUpdate) error {
	return s.sales.Update(ctx, id, update)
}

// Delete reverses the sale's inventory effect and removes the record.
// Each non-custom line's quantity is added back to current product stock
// with a matching "entrada" ledger entry; products that no longer exist
// are skipped.
func (s *salesService) Delete(ctx context.Context, id uuid.UUID) error {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load sale for deletion: %w", err)
	}

	orderNumber := receipt.OrderNumber(sale.Date)

	for _, item := range sale.Items {
		if item.IsCustom || item.ProductID == nil {
			continue
		}

		product, err := s.products.FindByID(ctx, *item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				continue
			}
			return fmt.Errorf("failed to load product for restock: %w", err)
		}

		if err := s.products.UpdateStock(ctx, product.ID, product.Stock+item.Quantity); err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}

		entry := &domain.StockEntry{
			ID:          uuid.New(),
			Date:        time.Now().UTC(),
			ProductName: product.Name,
			Kind:        domain.StockEntrada,
			Quantity:    item.Quantity,
			Reason:      "Estorno venda #" + orderNumber,
		}
		if err := s.stockLog.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record restock: %w", err)
		}
	}

	if err := s.sales.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	s.logger.Info("Sale deleted and stock restored", zap.String("sale_id", id.String()))
	return nil
}

// IngredientPopularity tallies how often each composed ingredient was
// sold in the window, weighted by line quantity. Reads the structured
// composition record; no text parsing.
func (s *salesService) IngredientPopularity(ctx context.Context, from, to *time.Time) (map[string]int, error) {
	sales, err := s.sales.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for analytics: %w", err)
	}

	counts := map[string]int{}
	for _, sale := range sales {
		for _, item := range sale.Items {
			if item.Composition == nil {
				continue
			}
			comp := item.Composition
			if comp.Meat != "" {
				counts[comp.Meat] += item.Quantity
			}
			for _, cheese := range comp.Cheeses {
				counts[cheese] += item.Quantity
			}
			for _, salad := range comp.Salads {
				counts[salad] += item.Quantity
			}
			for _, sauce := range comp.Sauces {
				counts[sauce] += item.Quantity
			}
			for _, extra := range comp.Extras {
				counts[extra.Name] += extra.Quantity * item.Quantity
			}
		}
	}

	return counts, nil
}
