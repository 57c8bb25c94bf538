package service

import (
	"context"
	"errors"
	"testing"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/menu"

	"go.uber.org/zap"
)

func newCatalogFixture() (*mockProductRepo, CatalogService) {
	products := newMockProductRepo()
	return products, NewCatalogService(products, zap.NewNop())
}

func TestCreateValidatesInput(t *testing.T) {
	_, svc := newCatalogFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input ProductInput
	}{
		{"blank name", ProductInput{Name: "  ", Category: "bebidas", Price: 100}},
		{"negative price", ProductInput{Name: "Suco", Category: "bebidas", Price: -1}},
		{"negative stock", ProductInput{Name: "Suco", Category: "bebidas", Price: 100, Stock: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !errors.Is(err, ErrInvalidProduct) {
				t.Errorf("Expected ErrInvalidProduct, got %v", err)
			}
		})
	}

	product, err := svc.Create(ctx, ProductInput{Name: " Suco ", Category: "bebidas", Price: 800, Cost: 400, Stock: 10, Active: true})
	if err != nil {
		t.Fatal(err)
	}
	if product.Name != "Suco" {
		t.Errorf("Name must be trimmed, got %q", product.Name)
	}
}

func TestCategoriesFallBackToDefaults(t *testing.T) {
	_, svc := newCatalogFixture()
	ctx := context.Background()

	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != len(domain.DefaultCategories) {
		t.Errorf("Empty catalog must yield the default categories, got %v", categories)
	}

	if _, err := svc.Create(ctx, ProductInput{Name: "Suco", Category: "sucos", Price: 800, Active: true}); err != nil {
		t.Fatal(err)
	}
	categories, err = svc.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 1 || categories[0] != "sucos" {
		t.Errorf("Expected the catalog's own categories, got %v", categories)
	}
}

func TestRestoreDefaultsSkipsExisting(t *testing.T) {
	products, svc := newCatalogFixture()
	ctx := context.Background()

	// One seed product already exists under a different casing
	if _, err := svc.Create(ctx, ProductInput{Name: "coca-cola lata", Category: "bebidas", Price: 650, Active: true}); err != nil {
		t.Fatal(err)
	}

	created, err := svc.RestoreDefaults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if created != len(menu.DefaultProducts)-1 {
		t.Errorf("Expected %d products created, got %d", len(menu.DefaultProducts)-1, created)
	}
	if len(products.products) != len(menu.DefaultProducts) {
		t.Errorf("Expected %d products total, got %d", len(menu.DefaultProducts), len(products.products))
	}

	// Restoring again is a no-op
	created, err = svc.RestoreDefaults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if created != 0 {
		t.Errorf("Second restore must create nothing, got %d", created)
	}
}
