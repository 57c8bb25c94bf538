package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"movearena-pos/internal/cart"
	"movearena-pos/internal/domain"
	"movearena-pos/internal/middleware"
	"movearena-pos/internal/money"
	"movearena-pos/internal/receipt"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddItemRequest adds one unit of a catalog product to the draft
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// CustomItemRequest is the structured custom sandwich payload
type CustomItemRequest struct {
	Size     string         `json:"size" validate:"required"`
	Meat     string         `json:"meat"`
	Cheeses  []string       `json:"cheeses" validate:"max=2"`
	Salads   []string       `json:"salads"`
	Sauces   []string       `json:"sauces"`
	Extras   map[string]int `json:"extras"`
	Nickname string         `json:"nickname"`
}

// QuantityRequest applies a signed delta to a draft line
type QuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// DraftFieldsRequest sets the order-level fields of the draft
type DraftFieldsRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	DeliveryAddress string `json:"delivery_address"`
	OrderType       string `json:"order_type" validate:"required,oneof=pickup delivery table"`
	DeliveryFee     int64  `json:"delivery_fee_cents" validate:"gte=0"`
	DiscountKind    string `json:"discount_kind" validate:"omitempty,oneof=fixed percent"`
	DiscountValue   int64  `json:"discount_value" validate:"gte=0"`
	Observation     string `json:"observation"`
	TableNumber     string `json:"table_number"`
}

// DraftResponse is the draft plus its derived totals
type DraftResponse struct {
	Draft    interface{} `json:"draft"`
	Subtotal money.Cents `json:"subtotal_cents"`
	Total    money.Cents `json:"total_cents"`
}

// DraftHandler handles HTTP requests for the operator's order in progress
type DraftHandler struct {
	drafts service.DraftService
	logger *zap.Logger
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(drafts service.DraftService, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, logger: logger}
}

// RegisterRoutes registers all draft routes; every route requires an
// authenticated operator because drafts are keyed by operator identity
func (h *DraftHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/draft", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Put("/fields", h.SetFields)
		r.Post("/items", h.AddItem)
		r.Post("/items/custom", h.AddCustomItem)
		r.Patch("/items/{index}", h.ChangeQuantity)
		r.Delete("/items/{index}", h.RemoveItem)
		r.Get("/receipt", h.PreviewReceipt)
	})
}

func operatorID(r *http.Request) (string, bool) {
	return middleware.GetUserID(r.Context())
}

func (h *DraftHandler) respondDraft(w http.ResponseWriter, draft interface{}, items []domain.CartItem, d domain.Discount, orderType domain.OrderType, fee money.Cents) {
	c := cart.FromItems(items)
	middleware.RespondWithJSON(w, http.StatusOK, DraftResponse{
		Draft:    draft,
		Subtotal: c.Subtotal(),
		Total:    c.Total(d, orderType, fee),
	})
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	opID, ok := operatorID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	draft, err := h.drafts.Get(r.Context(), opID)
	if err != nil {
		h.logger.Error("Failed to load draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load draft")
		return
	}

	h.respondDraft(w, draft, draft.Items, draft.Discount, draft.OrderType, draft.DeliveryFee)
}

func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	opID, ok := operatorID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	draft, err := h.drafts.AddProduct(r.Context(), opID, productID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrInactiveProduct):
			middleware.RespondWithError(w, http.StatusConflict, "product is not active")
		default:
			h.logger.Error("Failed to add item", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		}
		return
	}

	h.respondDraft(w, draft, draft.Items, draft.Discount, draft.OrderType, draft.DeliveryFee)
}

func (h *DraftHandler) AddCustomItem(w http.ResponseWriter, r *http.Request) {
	opID, ok := operatorID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CustomItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.drafts.AddCustomItem(r.Context(), opID, service.CustomItemInput{
		Size:     req.Size,
		Meat:     req.Meat,
		Cheeses:  req.Cheeses,
		Salads:   req.Salads,
		Sauces:   req.Sauces,
		Extras:   req.Extras,
		Nickname: req.Nickname,
	})
	if err != nil {
		h.logger.Debug("Failed to compose item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondDraft(w, draft, draft.Items, draft.Discount, draft.OrderType, draft.DeliveryFee)
}

func (h *DraftHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	opID, ok := operatorID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid item index")
		return
	}

	var req QuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.drafts.ChangeQuantity(r.Context(), opID, index, req.Delta)
	if err != nil {
		if errors.Is(err, cart.ErrIndexOutOfRange) {
			middleware.RespondWithError(w, http.StatusNotFound, "item index out of range")
			return
		}
		h.logger.Error("Failed to change quantity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to change quantity")
		return
	}

	h.respondDraft(w, draft, draft.Items, draft.Discount, draft.OrderType, draft.DeliveryFee)
}

func (h *DraftHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	opID, ok := operatorID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid item index")
		return
	}

	draft, err := h.drafts.RemoveItem(r.Context(), opID, index)
	if err != nil {
		if errors.Is(err, cart.ErrIndexOutOfRange) {
			middleware.RespondWithError(w, http.StatusNotFound, "item index out of range")
			return
		}
		h.logger.Error("Failed to remove item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	h.respondDraft(w, draft, draft.Items, draft.Discount, draft.OrderType, draft.DeliveryFee)
}

func (h *DraftHandler) SetFields(w http.ResponseWriter, r *http.Request) {
	opID, ok := operatorID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req DraftFieldsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.drafts.SetFields(r.Context(), opID, service.DraftFields{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		OrderType:       domain.OrderType(req.OrderType),
		DeliveryFee:     money.Cents(req.DeliveryFee),
		Discount: domain.Discount{
			Kind:  domain.DiscountKind(req.DiscountKind),
			Value: req.DiscountValue,
		},
		Observation: req.Observation,
		TableNumber: req.TableNumber,
	})
	if err != nil {
		h.logger.Error("Failed to set draft fields", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set draft fields")
		return
	}

	h.respondDraft(w, draft, draft.Items, draft.Discount, draft.OrderType, draft.DeliveryFee)
}

func (h *DraftHandler) Clear(w http.ResponseWriter, r *http.Request) {
	opID, ok := operatorID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.drafts.Clear(r.Context(), opID); err != nil {
		h.logger.Error("Failed to clear draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear draft")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "draft cleared"})
}

// PreviewReceipt renders the current draft as a receipt before settlement
func (h *DraftHandler) PreviewReceipt(w http.ResponseWriter, r *http.Request) {
	opID, ok := operatorID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	draft, err := h.drafts.Get(r.Context(), opID)
	if err != nil {
		h.logger.Error("Failed to load draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load draft")
		return
	}

	order := receipt.FromCart(draft.Items, draft.Discount, draft.OrderType, draft.DeliveryFee, time.Now().UTC())
	order.Customer = draft.CustomerName
	order.Phone = draft.CustomerPhone
	order.Address = draft.DeliveryAddress
	order.Observation = draft.Observation
	order.TableNumber = draft.TableNumber

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(order.HTML()))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(order.Text()))
}
