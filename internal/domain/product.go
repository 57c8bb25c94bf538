package domain

import (
	"time"

	"github.com/google/uuid"

	"movearena-pos/internal/money"
)

// Product represents a catalog entry
type Product struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Category  string      `json:"category" db:"category"`
	Price     money.Cents `json:"price_cents" db:"price_cents"`
	Cost      money.Cents `json:"cost_cents" db:"cost_cents"`
	Stock     int         `json:"stock" db:"stock"`
	ImageURL  string      `json:"image_url" db:"image_url"`
	Active    bool        `json:"active" db:"active"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// DefaultCategories are the product categories seeded on a fresh install
var DefaultCategories = []string{"bebidas", "lanches", "combos"}
