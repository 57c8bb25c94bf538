package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"movearena-pos/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByName(ctx context.Context, name string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts a new customer
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, address)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, customer.ID, customer.Name, customer.Phone, customer.Address)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// Update replaces a customer's attributes
func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, address = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, customer.ID, customer.Name, customer.Phone, customer.Address)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return requireRowsAffected(result, ErrCustomerNotFound)
}

// Delete removes a customer
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return requireRowsAffected(result, ErrCustomerNotFound)
}

// FindByName retrieves a customer by case-insensitive name match
func (r *customerRepository) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	query := `
		SELECT id, name, phone, address
		FROM customers
		WHERE LOWER(name) = LOWER($1)
	`

	customer := &domain.Customer{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.Address,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by name: %w", err)
	}

	return customer, nil
}

// List retrieves all customers in name order
func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, phone, address FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		customer := &domain.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Address); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}
