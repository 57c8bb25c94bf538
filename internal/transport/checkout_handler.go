package transport

import (
	"errors"
	"net/http"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/middleware"
	"movearena-pos/internal/money"
	"movearena-pos/internal/receipt"
	"movearena-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutRequest finalizes the operator's current draft
type CheckoutRequest struct {
	PaymentMethod  string `json:"payment_method" validate:"required,oneof=money pix debit credit"`
	AmountReceived int64  `json:"amount_received_cents" validate:"gte=0"`
}

// CheckoutResponse returns the settled sale, the cash change, and the
// plain-text receipt in one round trip
type CheckoutResponse struct {
	Sale        *domain.Sale `json:"sale"`
	ChangeCents money.Cents  `json:"change_cents"`
	Receipt     string       `json:"receipt"`
}

// CheckoutHandler handles settlement of the operator's draft
type CheckoutHandler struct {
	checkout service.CheckoutService
	drafts   service.DraftService
	users    service.UserService
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout service.CheckoutService, drafts service.DraftService, users service.UserService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, drafts: drafts, users: users, logger: logger}
}

// RegisterRoutes registers the checkout route
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Settle)
	})
}

// Settle reads the operator's draft, settles it with the given payment,
// clears the draft on success, and returns sale, change, and receipt
func (h *CheckoutHandler) Settle(w http.ResponseWriter, r *http.Request) {
	opID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.drafts.Get(r.Context(), opID)
	if err != nil {
		h.logger.Error("Failed to load draft for checkout", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load draft")
		return
	}

	operator := h.operatorName(r)

	result, err := h.checkout.Settle(r.Context(), service.CheckoutInput{
		Items:           draft.Items,
		CustomerName:    draft.CustomerName,
		CustomerPhone:   draft.CustomerPhone,
		DeliveryAddress: draft.DeliveryAddress,
		OrderType:       draft.OrderType,
		DeliveryFee:     draft.DeliveryFee,
		Discount:        draft.Discount,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		Observation:     draft.Observation,
		Operator:        operator,
		TableNumber:     draft.TableNumber,
		AmountReceived:  money.Cents(req.AmountReceived),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusUnprocessableEntity, "cart is empty")
		case errors.Is(err, service.ErrNoPaymentMethod):
			middleware.RespondWithError(w, http.StatusUnprocessableEntity, "no payment method selected")
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	if err := h.drafts.Clear(r.Context(), opID); err != nil {
		// The sale is already settled; losing the clear only leaves a
		// stale draft behind.
		h.logger.Warn("Failed to clear draft after checkout", zap.Error(err))
	}

	order := receipt.FromSale(*result.Sale)
	order.TableNumber = draft.TableNumber

	middleware.RespondWithJSON(w, http.StatusCreated, CheckoutResponse{
		Sale:        result.Sale,
		ChangeCents: result.Change,
		Receipt:     order.Text(),
	})
}

// operatorName resolves the authenticated operator's display name for the
// sale record, falling back to the raw ID
func (h *CheckoutHandler) operatorName(r *http.Request) string {
	opID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return ""
	}
	id, err := uuid.Parse(opID)
	if err != nil {
		return opID
	}
	if user, err := h.users.GetUserByID(r.Context(), id); err == nil {
		return user.Name
	}
	return opID
}
