package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/repository"

	"go.uber.org/zap"
)

var ErrEmptyTableNumber = errors.New("table number is required")

// TableService manages carts held open against tables
type TableService interface {
	Open(ctx context.Context, tableNumber string) (*domain.TableOrder, error)
	Save(ctx context.Context, order *domain.TableOrder) error
	Get(ctx context.Context, tableNumber string) (*domain.TableOrder, error)
	List(ctx context.Context) ([]*domain.TableOrder, error)
	Abandon(ctx context.Context, tableNumber string) error
}

type tableService struct {
	tables repository.TableOrderRepository
	logger *zap.Logger
}

// NewTableService creates a new instance of TableService
func NewTableService(tables repository.TableOrderRepository, logger *zap.Logger) TableService {
	return &tableService{tables: tables, logger: logger}
}

// Open registers a table with an empty cart. Empty table numbers are a
// validation failure before anything is persisted.
func (s *tableService) Open(ctx context.Context, tableNumber string) (*domain.TableOrder, error) {
	tableNumber = strings.TrimSpace(tableNumber)
	if tableNumber == "" {
		return nil, ErrEmptyTableNumber
	}

	now := time.Now().UTC()
	order := &domain.TableOrder{
		TableNumber: tableNumber,
		Items:       []domain.CartItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tables.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}

	s.logger.Info("Table opened", zap.String("table", tableNumber))
	return order, nil
}

// Save replaces the cart and customer fields held against the table
func (s *tableService) Save(ctx context.Context, order *domain.TableOrder) error {
	if strings.TrimSpace(order.TableNumber) == "" {
		return ErrEmptyTableNumber
	}
	order.UpdatedAt = time.Now().UTC()
	return s.tables.Save(ctx, order)
}

func (s *tableService) Get(ctx context.Context, tableNumber string) (*domain.TableOrder, error) {
	return s.tables.FindByTable(ctx, tableNumber)
}

func (s *tableService) List(ctx context.Context) ([]*domain.TableOrder, error) {
	return s.tables.List(ctx)
}

// Abandon frees a table without settling its cart
func (s *tableService) Abandon(ctx context.Context, tableNumber string) error {
	return s.tables.Delete(ctx, tableNumber)
}
