package service

import (
	"context"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService manages the customer book. Creation happens implicitly
// at checkout; this service covers lookup and maintenance.
type CustomerService interface {
	List(ctx context.Context) ([]*domain.Customer, error)
	FindByName(ctx context.Context, name string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customers repository.CustomerRepository, logger *zap.Logger) CustomerService {
	return &customerService{customers: customers, logger: logger}
}

func (s *customerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *customerService) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	return s.customers.FindByName(ctx, name)
}

func (s *customerService) Update(ctx context.Context, customer *domain.Customer) error {
	return s.customers.Update(ctx, customer)
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}
