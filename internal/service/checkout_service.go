package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
	"movearena-pos/internal/pricing"
	"movearena-pos/internal/receipt"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoPaymentMethod = errors.New("no payment method selected")
)

// CheckoutInput carries everything needed to settle a cart
type CheckoutInput struct {
	Items           []domain.CartItem
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	OrderType       domain.OrderType
	DeliveryFee     money.Cents
	Discount        domain.Discount
	PaymentMethod   domain.PaymentMethod
	Observation     string
	Operator        string
	TableNumber     string
	AmountReceived  money.Cents
}

// CheckoutResult is the outcome of a settlement. Change is informational
// only and never persisted on the sale.
type CheckoutResult struct {
	Sale   *domain.Sale
	Change money.Cents
}

// CheckoutService finalizes carts into immutable sales, applying the
// inventory and customer side effects as an ordered compensable saga.
type CheckoutService interface {
	Settle(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type checkoutService struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	tables    repository.TableOrderRepository
	stockLog  repository.StockEntryRepository
	logger    *zap.Logger
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	tables repository.TableOrderRepository,
	stockLog repository.StockEntryRepository,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		products:  products,
		sales:     sales,
		customers: customers,
		tables:    tables,
		stockLog:  stockLog,
		logger:    logger,
	}
}

// Settle validates the input, builds the sale snapshot, then runs the
// settlement saga: free table -> insert sale -> deduct stock -> upsert
// customer. Completed steps are compensated in reverse on failure.
func (s *checkoutService) Settle(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if input.PaymentMethod == "" {
		return nil, ErrNoPaymentMethod
	}

	sale := s.buildSale(input)

	steps := []sagaStep{}
	if input.TableNumber != "" {
		steps = append(steps, s.freeTableStep(input.TableNumber))
	}
	steps = append(steps,
		s.insertSaleStep(sale),
		s.deductStockStep(sale),
		s.upsertCustomerStep(input),
	)

	if err := runSaga(ctx, s.logger, steps); err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	change := money.Cents(0)
	if input.PaymentMethod == domain.PaymentMoney && input.AmountReceived > 0 {
		change = (input.AmountReceived - sale.Total).ClampZero()
	}

	s.logger.Info("Sale settled",
		zap.String("sale_id", sale.ID.String()),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.Int64("total_cents", int64(sale.Total)),
	)

	return &CheckoutResult{Sale: sale, Change: change}, nil
}

func (s *checkoutService) buildSale(input CheckoutInput) *domain.Sale {
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		customer = "Cliente"
	}

	fee := money.Cents(0)
	address := ""
	if input.OrderType == domain.OrderTypeDelivery {
		fee = input.DeliveryFee
		address = strings.TrimSpace(input.DeliveryAddress)
	}

	items := make([]domain.CartItem, len(input.Items))
	copy(items, input.Items)

	subtotal := pricing.Subtotal(items)
	total := pricing.GrandTotal(items, input.Discount, input.OrderType, input.DeliveryFee)

	return &domain.Sale{
		ID:            uuid.New(),
		Date:          time.Now().UTC(),
		Customer:      customer,
		Phone:         strings.TrimSpace(input.CustomerPhone),
		Address:       address,
		OrderType:     input.OrderType,
		DeliveryFee:   fee,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      input.Discount,
		Total:         total,
		PaymentMethod: input.PaymentMethod,
		Observation:   input.Observation,
		Operator:      input.Operator,
	}
}

// freeTableStep deletes the settled table's open order, recreating it if
// a later step fails
func (s *checkoutService) freeTableStep(tableNumber string) sagaStep {
	var freed *domain.TableOrder

	return sagaStep{
		name: "free-table",
		run: func(ctx context.Context) error {
			order, err := s.tables.FindByTable(ctx, tableNumber)
			if err != nil {
				if errors.Is(err, repository.ErrTableOrderNotFound) {
					return nil
				}
				return err
			}
			freed = order
			return s.tables.Delete(ctx, tableNumber)
		},
		compensate: func(ctx context.Context) error {
			if freed == nil {
				return nil
			}
			if err := s.tables.Create(ctx, freed); err != nil && !errors.Is(err, repository.ErrTableAlreadyOpen) {
				return err
			}
			return nil
		},
	}
}

func (s *checkoutService) insertSaleStep(sale *domain.Sale) sagaStep {
	return sagaStep{
		name: "insert-sale",
		run: func(ctx context.Context) error {
			return s.sales.Create(ctx, sale)
		},
		compensate: func(ctx context.Context) error {
			if err := s.sales.Delete(ctx, sale.ID); err != nil && !errors.Is(err, repository.ErrSaleNotFound) {
				return err
			}
			return nil
		},
	}
}

// deductStockStep deducts each non-custom line's quantity from product
// stock, floored at zero, writing one "saida" ledger entry per deducted
// line. Missing products are skipped silently. Compensation restores the
// exact deltas applied with matching "entrada" entries.
func (s *checkoutService) deductStockStep(sale *domain.Sale) sagaStep {
	type applied struct {
		product *domain.Product
		delta   int
	}
	var deductions []applied
	orderNumber := receipt.OrderNumber(sale.Date)

	return sagaStep{
		name: "deduct-stock",
		run: func(ctx context.Context) error {
			for _, item := range sale.Items {
				if item.IsCustom || item.ProductID == nil {
					continue
				}

				product, err := s.products.FindByID(ctx, *item.ProductID)
				if err != nil {
					if errors.Is(err, repository.ErrProductNotFound) {
						continue
					}
					return err
				}

				newStock := product.Stock - item.Quantity
				if newStock < 0 {
					newStock = 0
				}
				delta := product.Stock - newStock
				if err := s.products.UpdateStock(ctx, product.ID, newStock); err != nil {
					return err
				}
				deductions = append(deductions, applied{product: product, delta: delta})

				entry := &domain.StockEntry{
					ID:          uuid.New(),
					Date:        sale.Date,
					ProductName: product.Name,
					Kind:        domain.StockSaida,
					Quantity:    -delta,
					Reason:      "Venda #" + orderNumber,
				}
				if err := s.stockLog.Create(ctx, entry); err != nil {
					return err
				}
			}
			return nil
		},
		compensate: func(ctx context.Context) error {
			var firstErr error
			for _, d := range deductions {
				if err := s.products.UpdateStock(ctx, d.product.ID, d.product.Stock); err != nil {
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				entry := &domain.StockEntry{
					ID:          uuid.New(),
					Date:        time.Now().UTC(),
					ProductName: d.product.Name,
					Kind:        domain.StockEntrada,
					Quantity:    d.delta,
					Reason:      "Estorno venda #" + orderNumber,
				}
				if err := s.stockLog.Create(ctx, entry); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			return firstErr
		},
	}
}

// upsertCustomerStep creates an unknown customer (case-insensitive name
// match) or refreshes a known customer's address when a differing
// delivery address was supplied
func (s *checkoutService) upsertCustomerStep(input CheckoutInput) sagaStep {
	return sagaStep{
		name: "upsert-customer",
		run: func(ctx context.Context) error {
			name := strings.TrimSpace(input.CustomerName)
			if name == "" {
				return nil
			}

			existing, err := s.customers.FindByName(ctx, name)
			if err != nil {
				if !errors.Is(err, repository.ErrCustomerNotFound) {
					return err
				}
				address := ""
				if input.OrderType == domain.OrderTypeDelivery {
					address = strings.TrimSpace(input.DeliveryAddress)
				}
				return s.customers.Create(ctx, &domain.Customer{
					ID:      uuid.New(),
					Name:    name,
					Phone:   strings.TrimSpace(input.CustomerPhone),
					Address: address,
				})
			}

			address := strings.TrimSpace(input.DeliveryAddress)
			if input.OrderType == domain.OrderTypeDelivery && address != "" && existing.Address != address {
				existing.Address = address
				return s.customers.Update(ctx, existing)
			}
			return nil
		},
	}
}
