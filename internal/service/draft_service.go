package service

import (
	"context"
	"errors"
	"fmt"

	"movearena-pos/internal/cart"
	"movearena-pos/internal/composer"
	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/state"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInactiveProduct = errors.New("product is not active")

// CustomItemInput is the structured selection set for a composed sandwich
type CustomItemInput struct {
	Size     string
	Meat     string
	Cheeses  []string
	Salads   []string
	Sauces   []string
	Extras   map[string]int
	Nickname string
}

// DraftFields are the order-level fields of a draft that can be set
// independently of the cart lines
type DraftFields struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	OrderType       domain.OrderType
	DeliveryFee     money.Cents
	Discount        domain.Discount
	Observation     string
	TableNumber     string
}

// DraftService maintains each operator's order in progress: the cart
// lines plus the order-level fields, persisted in the draft store so the
// order survives reconnects.
type DraftService interface {
	Get(ctx context.Context, operatorID string) (*state.OrderDraft, error)
	AddProduct(ctx context.Context, operatorID string, productID uuid.UUID) (*state.OrderDraft, error)
	AddCustomItem(ctx context.Context, operatorID string, input CustomItemInput) (*state.OrderDraft, error)
	ChangeQuantity(ctx context.Context, operatorID string, index, delta int) (*state.OrderDraft, error)
	RemoveItem(ctx context.Context, operatorID string, index int) (*state.OrderDraft, error)
	SetFields(ctx context.Context, operatorID string, fields DraftFields) (*state.OrderDraft, error)
	LoadTable(ctx context.Context, operatorID string, order *domain.TableOrder) (*state.OrderDraft, error)
	Clear(ctx context.Context, operatorID string) error
}

type draftService struct {
	store      state.Store
	products   repository.ProductRepository
	defaultFee money.Cents
	logger     *zap.Logger
}

// NewDraftService creates a new instance of DraftService. defaultFee is
// the configured delivery fee applied when a delivery draft does not set
// its own.
func NewDraftService(store state.Store, products repository.ProductRepository, defaultFee money.Cents, logger *zap.Logger) DraftService {
	return &draftService{store: store, products: products, defaultFee: defaultFee, logger: logger}
}

// Get loads the operator's draft, returning an empty pickup draft when
// none is stored
func (s *draftService) Get(ctx context.Context, operatorID string) (*state.OrderDraft, error) {
	draft, err := s.store.Load(ctx, operatorID)
	if err != nil {
		if errors.Is(err, state.ErrDraftNotFound) {
			return &state.OrderDraft{OrderType: domain.OrderTypePickup}, nil
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return draft, nil
}

// AddProduct adds one unit of an active catalog product, merging with an
// existing line for the same product
func (s *draftService) AddProduct(ctx context.Context, operatorID string, productID uuid.UUID) (*state.OrderDraft, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, ErrInactiveProduct
	}

	return s.mutate(ctx, operatorID, func(c *cart.Cart) error {
		c.AddProduct(*product)
		return nil
	})
}

// AddCustomItem runs the six-step composition over the structured input
// and appends the resulting line. Custom lines never merge.
func (s *draftService) AddCustomItem(ctx context.Context, operatorID string, input CustomItemInput) (*state.OrderDraft, error) {
	item, err := composeItem(input)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, operatorID, func(c *cart.Cart) error {
		return c.AddCustomItem(item)
	})
}

// composeItem replays the structured selections through the builder so
// the same rules apply regardless of how the item was entered
func composeItem(input CustomItemInput) (domain.CartItem, error) {
	b := composer.New()
	if err := b.SelectSize(input.Size); err != nil {
		return domain.CartItem{}, err
	}
	b.SelectMeat(input.Meat)
	for _, cheese := range input.Cheeses {
		b.ToggleCheese(cheese)
	}
	for _, salad := range input.Salads {
		b.ToggleSalad(salad)
	}
	for _, sauce := range input.Sauces {
		b.ToggleSauce(sauce)
	}
	for key, qty := range input.Extras {
		for i := 0; i < qty; i++ {
			if err := b.IncrementExtra(key); err != nil {
				return domain.CartItem{}, err
			}
		}
	}
	return b.Build(input.Nickname)
}

func (s *draftService) ChangeQuantity(ctx context.Context, operatorID string, index, delta int) (*state.OrderDraft, error) {
	return s.mutate(ctx, operatorID, func(c *cart.Cart) error {
		return c.ChangeQuantity(index, delta)
	})
}

func (s *draftService) RemoveItem(ctx context.Context, operatorID string, index int) (*state.OrderDraft, error) {
	return s.mutate(ctx, operatorID, func(c *cart.Cart) error {
		return c.RemoveItem(index)
	})
}

// SetFields replaces the order-level fields, leaving cart lines untouched
func (s *draftService) SetFields(ctx context.Context, operatorID string, fields DraftFields) (*state.OrderDraft, error) {
	draft, err := s.Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	draft.CustomerName = fields.CustomerName
	draft.CustomerPhone = fields.CustomerPhone
	draft.DeliveryAddress = fields.DeliveryAddress
	draft.OrderType = fields.OrderType
	draft.DeliveryFee = fields.DeliveryFee
	if fields.OrderType == domain.OrderTypeDelivery && fields.DeliveryFee == 0 {
		draft.DeliveryFee = s.defaultFee
	}
	draft.Discount = fields.Discount
	draft.Observation = fields.Observation
	draft.TableNumber = fields.TableNumber

	if err := s.store.Save(ctx, operatorID, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// LoadTable replaces the operator's draft with the cart held against a
// table, so the table can be extended or settled
func (s *draftService) LoadTable(ctx context.Context, operatorID string, order *domain.TableOrder) (*state.OrderDraft, error) {
	draft := &state.OrderDraft{
		Items:         append([]domain.CartItem(nil), order.Items...),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		OrderType:     domain.OrderTypeTable,
		TableNumber:   order.TableNumber,
	}
	if err := s.store.Save(ctx, operatorID, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

func (s *draftService) Clear(ctx context.Context, operatorID string) error {
	return s.store.Clear(ctx, operatorID)
}

// mutate loads the draft, applies a cart operation, and saves the result
func (s *draftService) mutate(ctx context.Context, operatorID string, op func(*cart.Cart) error) (*state.OrderDraft, error) {
	draft, err := s.Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	c := cart.FromItems(draft.Items)
	if err := op(c); err != nil {
		return nil, err
	}
	draft.Items = c.Items()

	if err := s.store.Save(ctx, operatorID, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}
