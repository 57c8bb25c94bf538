package service

import (
	"context"
	"errors"
	"testing"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/state"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newDraftFixture() (*mockProductRepo, DraftService) {
	products := newMockProductRepo()
	svc := NewDraftService(state.NewMemoryStore(), products, 500, zap.NewNop())
	return products, svc
}

func TestGetReturnsEmptyPickupDraft(t *testing.T) {
	_, svc := newDraftFixture()

	draft, err := svc.Get(context.Background(), "op-1")
	if err != nil {
		t.Fatal(err)
	}
	if draft.OrderType != domain.OrderTypePickup {
		t.Errorf("Fresh draft must default to pickup, got %q", draft.OrderType)
	}
	if len(draft.Items) != 0 {
		t.Errorf("Fresh draft must be empty, got %d items", len(draft.Items))
	}
}

func TestAddProductPersistsAndMerges(t *testing.T) {
	products, svc := newDraftFixture()
	ctx := context.Background()

	p := &domain.Product{ID: uuid.New(), Name: "X-Salada", Price: 1500, Active: true}
	if err := products.Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddProduct(ctx, "op-1", p.ID); err != nil {
		t.Fatal(err)
	}
	draft, err := svc.AddProduct(ctx, "op-1", p.ID)
	if err != nil {
		t.Fatal(err)
	}

	if len(draft.Items) != 1 || draft.Items[0].Quantity != 2 {
		t.Errorf("Repeated adds must merge into one line of 2, got %+v", draft.Items)
	}

	// The draft survives a reload
	reloaded, err := svc.Get(ctx, "op-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Items) != 1 || reloaded.Items[0].Quantity != 2 {
		t.Errorf("Draft must persist across loads, got %+v", reloaded.Items)
	}
}

func TestAddProductRejectsInactiveAndMissing(t *testing.T) {
	products, svc := newDraftFixture()
	ctx := context.Background()

	p := &domain.Product{ID: uuid.New(), Name: "Antigo", Price: 900, Active: false}
	if err := products.Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddProduct(ctx, "op-1", p.ID); !errors.Is(err, ErrInactiveProduct) {
		t.Errorf("Expected ErrInactiveProduct, got %v", err)
	}
	if _, err := svc.AddProduct(ctx, "op-1", uuid.New()); !errors.Is(err, repository.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestAddCustomItemComposes(t *testing.T) {
	_, svc := newDraftFixture()
	ctx := context.Background()

	draft, err := svc.AddCustomItem(ctx, "op-1", CustomItemInput{
		Size:     "15cm",
		Meat:     "Frango",
		Cheeses:  []string{"Cheddar", "Mussarela"},
		Extras:   map[string]int{"bacon": 1},
		Nickname: "da Ana",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(draft.Items) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(draft.Items))
	}
	item := draft.Items[0]
	if !item.IsCustom {
		t.Error("Composed line must be custom")
	}
	if item.Name != "Lanche 15cm - da Ana" {
		t.Errorf("Unexpected name: %q", item.Name)
	}
	// 1800 base + 400 bacon + 300 auto double-cheese
	if item.Price != 2500 {
		t.Errorf("Expected price 2500, got %d", item.Price)
	}
	if item.Composition == nil || len(item.Composition.Cheeses) != 2 {
		t.Errorf("Composition must record both cheeses: %+v", item.Composition)
	}
}

func TestAddCustomItemRequiresValidSize(t *testing.T) {
	_, svc := newDraftFixture()

	if _, err := svc.AddCustomItem(context.Background(), "op-1", CustomItemInput{Size: "45cm"}); err == nil {
		t.Fatal("Expected error for unknown size")
	}
}

func TestChangeQuantityAndRemove(t *testing.T) {
	products, svc := newDraftFixture()
	ctx := context.Background()

	p := &domain.Product{ID: uuid.New(), Name: "Suco", Price: 800, Active: true}
	if err := products.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddProduct(ctx, "op-1", p.ID); err != nil {
		t.Fatal(err)
	}

	draft, err := svc.ChangeQuantity(ctx, "op-1", 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if draft.Items[0].Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", draft.Items[0].Quantity)
	}

	draft, err = svc.RemoveItem(ctx, "op-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(draft.Items) != 0 {
		t.Errorf("Expected empty draft after removal, got %+v", draft.Items)
	}
}

func TestSetFieldsKeepsItems(t *testing.T) {
	products, svc := newDraftFixture()
	ctx := context.Background()

	p := &domain.Product{ID: uuid.New(), Name: "Suco", Price: 800, Active: true}
	if err := products.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddProduct(ctx, "op-1", p.ID); err != nil {
		t.Fatal(err)
	}

	draft, err := svc.SetFields(ctx, "op-1", DraftFields{
		CustomerName: "Maria",
		OrderType:    domain.OrderTypeDelivery,
		DeliveryFee:  450,
		Discount:     domain.Discount{Kind: domain.DiscountPercent, Value: 10},
	})
	if err != nil {
		t.Fatal(err)
	}

	if draft.CustomerName != "Maria" || draft.OrderType != domain.OrderTypeDelivery {
		t.Errorf("Fields not applied: %+v", draft)
	}
	if len(draft.Items) != 1 {
		t.Errorf("SetFields must not touch cart lines, got %+v", draft.Items)
	}
}

func TestSetFieldsAppliesDefaultDeliveryFee(t *testing.T) {
	_, svc := newDraftFixture()
	ctx := context.Background()

	// Delivery without an explicit fee gets the configured default
	draft, err := svc.SetFields(ctx, "op-1", DraftFields{OrderType: domain.OrderTypeDelivery})
	if err != nil {
		t.Fatal(err)
	}
	if draft.DeliveryFee != 500 {
		t.Errorf("Expected default fee 500, got %d", draft.DeliveryFee)
	}

	// An explicit fee wins over the default
	draft, err = svc.SetFields(ctx, "op-1", DraftFields{OrderType: domain.OrderTypeDelivery, DeliveryFee: 700})
	if err != nil {
		t.Fatal(err)
	}
	if draft.DeliveryFee != 700 {
		t.Errorf("Expected explicit fee 700, got %d", draft.DeliveryFee)
	}

	// Pickup never carries a fee by default
	draft, err = svc.SetFields(ctx, "op-1", DraftFields{OrderType: domain.OrderTypePickup})
	if err != nil {
		t.Fatal(err)
	}
	if draft.DeliveryFee != 0 {
		t.Errorf("Pickup draft must not get the default fee, got %d", draft.DeliveryFee)
	}
}

func TestLoadTableReplacesDraft(t *testing.T) {
	products, svc := newDraftFixture()
	ctx := context.Background()

	p := &domain.Product{ID: uuid.New(), Name: "Suco", Price: 800, Active: true}
	if err := products.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddProduct(ctx, "op-1", p.ID); err != nil {
		t.Fatal(err)
	}

	order := &domain.TableOrder{
		TableNumber:  "5",
		CustomerName: "Mesa cinco",
		Items:        []domain.CartItem{{ID: "x", Name: "X-Bacon", Price: 1800, Quantity: 2}},
	}
	draft, err := svc.LoadTable(ctx, "op-1", order)
	if err != nil {
		t.Fatal(err)
	}

	if draft.OrderType != domain.OrderTypeTable || draft.TableNumber != "5" {
		t.Errorf("Loaded draft must be bound to the table: %+v", draft)
	}
	if len(draft.Items) != 1 || draft.Items[0].Name != "X-Bacon" {
		t.Errorf("Table items must replace the previous draft: %+v", draft.Items)
	}

	if err := svc.Clear(ctx, "op-1"); err != nil {
		t.Fatal(err)
	}
	fresh, err := svc.Get(ctx, "op-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh.Items) != 0 {
		t.Errorf("Cleared draft must be empty, got %+v", fresh.Items)
	}
}
