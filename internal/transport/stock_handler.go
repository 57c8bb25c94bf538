package transport

import (
	"errors"
	"net/http"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/middleware"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockAdjustRequest applies one manual stock adjustment
type StockAdjustRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Kind      string `json:"kind" validate:"required,oneof=add remove set"`
	Reason    string `json:"reason"`
}

// StockEntryRequest edits an existing ledger entry
type StockEntryRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	ProductName string    `json:"product_name" validate:"required"`
	Kind        string    `json:"kind" validate:"required,oneof=entrada saida ajuste"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
}

// StockHandler handles HTTP requests for inventory adjustments and the
// stock audit ledger
type StockHandler struct {
	inventory service.InventoryService
	logger    *zap.Logger
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(inventory service.InventoryService, logger *zap.Logger) *StockHandler {
	return &StockHandler{inventory: inventory, logger: logger}
}

// RegisterRoutes registers all stock routes
func (h *StockHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/stock", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/adjust", h.Adjust)
		r.Get("/history", h.History)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.logger))
			r.Put("/history/{id}", h.UpdateEntry)
			r.With(middleware.RequireConfirmation(h.logger)).Delete("/history/{id}", h.DeleteEntry)
		})
	})
}

func (h *StockHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req StockAdjustRequest
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

	if err := h.inventory.Adjust(r.Context(), productID, req.Quantity, service.AdjustmentKind(req.Kind), req.Reason); err != nil {
		if errors.Is(err, service.ErrInvalidAdjustment) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to adjust stock", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to adjust stock")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "stock adjusted"})
}

func (h *StockHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.inventory.History(r.Context())
	if err != nil {
		h.logger.Error("Failed to list stock history", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list stock history")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *StockHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	var req StockEntryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := &domain.StockEntry{
		ID:          id,
		Date:        req.Date,
		ProductName: req.ProductName,
		Kind:        domain.StockEntryKind(req.Kind),
		Quantity:    req.Quantity,
		Reason:      req.Reason,
	}
	if err := h.inventory.UpdateEntry(r.Context(), entry); err != nil {
		if errors.Is(err, repository.ErrStockEntryNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "stock entry not found")
			return
		}
		h.logger.Error("Failed to update stock entry", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update stock entry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, entry)
}

func (h *StockHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	if err := h.inventory.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrStockEntryNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "stock entry not found")
			return
		}
		h.logger.Error("Failed to delete stock entry", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete stock entry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "stock entry deleted"})
}
