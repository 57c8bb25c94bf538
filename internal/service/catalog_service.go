package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/menu"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidProduct = errors.New("invalid product")

// ProductInput carries the editable fields of a catalog entry
type ProductInput struct {
	Name     string
	Category string
	Price    money.Cents
	Cost     money.Cents
	Stock    int
	ImageURL string
	Active   bool
}

// CatalogService manages the product catalog
type CatalogService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, category string, activeOnly bool) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	RestoreDefaults(ctx context.Context) (int, error)
}

type catalogService struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(products repository.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogService{products: products, logger: logger}
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if input.Price < 0 || input.Cost < 0 {
		return fmt.Errorf("%w: price and cost must not be negative", ErrInvalidProduct)
	}
	if input.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}

func (s *catalogService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		Category:  strings.TrimSpace(input.Category),
		Price:     input.Price,
		Cost:      input.Cost,
		Stock:     input.Stock,
		ImageURL:  input.ImageURL,
		Active:    input.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	return product, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Category = strings.TrimSpace(input.Category)
	product.Price = input.Price
	product.Cost = input.Cost
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL
	product.Active = input.Active
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *catalogService) List(ctx context.Context, category string, activeOnly bool) ([]*domain.Product, error) {
	return s.products.List(ctx, category, activeOnly)
}

// Categories lists the categories in use, falling back to the default set
// on an empty catalog
func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.products.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return append([]string(nil), domain.DefaultCategories...), nil
	}
	return categories, nil
}

func (s *catalogService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.products.SetActive(ctx, id, active)
}

// RestoreDefaults seeds the stock beverage catalog, skipping products
// that already exist by name. Returns the number created.
func (s *catalogService) RestoreDefaults(ctx context.Context) (int, error) {
	existing, err := s.products.List(ctx, "", false)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p.Name)] = true
	}

	created := 0
	now := time.Now().UTC()
	for _, seed := range menu.DefaultProducts {
		if known[strings.ToLower(seed.Name)] {
			continue
		}
		product := &domain.Product{
			ID:        uuid.New(),
			Name:      seed.Name,
			Category:  seed.Category,
			Price:     seed.Price,
			Cost:      seed.Cost,
			Stock:     seed.Stock,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.products.Create(ctx, product); err != nil {
			return created, fmt.Errorf("failed to seed product %q: %w", seed.Name, err)
		}
		created++
	}

	s.logger.Info("Default catalog restored", zap.Int("created", created))
	return created, nil
}
