package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"movearena-pos/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func sampleDraft() *OrderDraft {
	return &OrderDraft{
		Items: []domain.CartItem{
			{ID: "p1", Name: "X-Salada", Price: 1500, Quantity: 2},
		},
		CustomerName: "Maria",
		OrderType:    domain.OrderTypeDelivery,
		DeliveryFee:  450,
		Discount:     domain.Discount{Kind: domain.DiscountPercent, Value: 10},
		TableNumber:  "4",
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Load(ctx, "op-1"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("Expected ErrDraftNotFound, got %v", err)
	}

	draft := sampleDraft()
	if err := store.Save(ctx, "op-1", draft); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(ctx, "op-1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.CustomerName != "Maria" || len(loaded.Items) != 1 || loaded.Items[0].Quantity != 2 {
		t.Errorf("Draft did not survive the round trip: %+v", loaded)
	}

	// Drafts are isolated per operator
	if _, err := store.Load(ctx, "op-2"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("Expected ErrDraftNotFound for another operator, got %v", err)
	}
}

func TestMemoryStoreCopiesOnBothSides(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	draft := sampleDraft()
	if err := store.Save(ctx, "op-1", draft); err != nil {
		t.Fatal(err)
	}

	// Mutating the saved value must not affect the stored draft
	draft.Items[0].Quantity = 99
	loaded, err := store.Load(ctx, "op-1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Items[0].Quantity != 2 {
		t.Errorf("Store must copy on save, got quantity %d", loaded.Items[0].Quantity)
	}

	// Mutating a loaded value must not affect later loads
	loaded.Items[0].Quantity = 42
	again, err := store.Load(ctx, "op-1")
	if err != nil {
		t.Fatal(err)
	}
	if again.Items[0].Quantity != 2 {
		t.Errorf("Store must copy on load, got quantity %d", again.Items[0].Quantity)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "op-1", sampleDraft()); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(ctx, "op-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "op-1"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("Expected ErrDraftNotFound after clear, got %v", err)
	}

	// Clearing a missing draft is not an error
	if err := store.Clear(ctx, "op-1"); err != nil {
		t.Errorf("Clearing an absent draft must not error: %v", err)
	}
}

func setupRedisStore(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client, ttl)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, store := setupRedisStore(t, time.Hour)
	ctx := context.Background()

	if _, err := store.Load(ctx, "op-1"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("Expected ErrDraftNotFound, got %v", err)
	}

	if err := store.Save(ctx, "op-1", sampleDraft()); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(ctx, "op-1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.CustomerName != "Maria" {
		t.Errorf("Expected customer Maria, got %q", loaded.CustomerName)
	}
	if loaded.Discount.Kind != domain.DiscountPercent || loaded.Discount.Value != 10 {
		t.Errorf("Discount did not survive serialization: %+v", loaded.Discount)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Price != 1500 {
		t.Errorf("Items did not survive serialization: %+v", loaded.Items)
	}

	if err := store.Clear(ctx, "op-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "op-1"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("Expected ErrDraftNotFound after clear, got %v", err)
	}
}

func TestRedisStoreExpiresDrafts(t *testing.T) {
	mr, store := setupRedisStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "op-1", sampleDraft()); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Load(ctx, "op-1"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("Expected the draft to expire, got %v", err)
	}
}
