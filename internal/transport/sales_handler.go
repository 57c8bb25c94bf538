package transport

import (
	"errors"
	"net/http"
	"time"

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

// SaleUpdateRequest carries the editable fields of a settled sale;
// omitted fields are untouched
type SaleUpdateRequest struct {
	Date          *time.Time `json:"date"`
	Customer      *string    `json:"customer"`
	Phone         *string    `json:"phone"`
	Address       *string    `json:"address"`
	OrderType     *string    `json:"order_type" validate:"omitempty,oneof=pickup delivery table"`
	PaymentMethod *string    `json:"payment_method" validate:"omitempty,oneof=money pix debit credit"`
	TotalCents    *int64     `json:"total_cents" validate:"omitempty,gte=0"`
	Observation   *string    `json:"observation"`
}

// SalesHandler handles HTTP requests for settled sales
type SalesHandler struct {
	sales  service.SalesService
	logger *zap.Logger
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(sales service.SalesService, logger *zap.Logger) *SalesHandler {
	return &SalesHandler{sales: sales, logger: logger}
}

// RegisterRoutes registers all sales routes. Edits and deletions are
// admin operations; deletion additionally requires confirmation because
// it reverses inventory.
func (h *SalesHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/sales", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.List)
		r.Get("/analytics/ingredients", h.IngredientPopularity)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/receipt", h.Receipt)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.logger))
			r.Put("/{id}", h.Update)
			r.With(middleware.RequireConfirmation(h.logger)).Delete("/{id}", h.Delete)
		})
	})
}

// parseDateRange reads optional from/to RFC 3339 query parameters
func parseDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	sales, err := h.sales.List(r.Context(), from, to)
	if err != nil {
		h.logger.Error("Failed to list sales", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list sales")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sales)
}

func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	sale, err := h.sales.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.logger.Error("Failed to get sale", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get sale")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sale)
}

// Receipt re-renders a settled sale's receipt, plain text by default or
// HTML with ?format=html
func (h *SalesHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	sale, err := h.sales.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.logger.Error("Failed to get sale", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get sale")
		return
	}

	order := receipt.FromSale(*sale)

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

func (h *SalesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	var req SaleUpdateRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := repository.SaleUpdate{
		Date:        req.Date,
		Customer:    req.Customer,
		Phone:       req.Phone,
		Address:     req.Address,
		Observation: req.Observation,
	}
	if req.OrderType != nil {
		orderType := domain.OrderType(*req.OrderType)
		update.OrderType = &orderType
	}
	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		update.PaymentMethod = &method
	}
	if req.TotalCents != nil {
		total := money.Cents(*req.TotalCents)
		update.Total = &total
	}

	if err := h.sales.Update(r.Context(), id, update); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.logger.Error("Failed to update sale", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update sale")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "sale updated"})
}

func (h *SalesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	if err := h.sales.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.logger.Error("Failed to delete sale", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete sale")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "sale deleted and stock restored"})
}

func (h *SalesHandler) IngredientPopularity(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	counts, err := h.sales.IngredientPopularity(r.Context(), from, to)
	if err != nil {
		h.logger.Error("Failed to compute ingredient popularity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute ingredient popularity")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, counts)
}
