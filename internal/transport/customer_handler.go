package transport

import (
	"errors"
	"net/http"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/middleware"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerRequest edits a known customer
type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerHandler handles HTTP requests for the customer book
type CustomerHandler struct {
	customers service.CustomerService
	logger    *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, logger: logger}
}

// RegisterRoutes registers all customer routes. Customers are created
// implicitly at checkout, so there is no create endpoint.
func (h *CustomerHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.List)
		r.Put("/{id}", h.Update)
		r.With(middleware.RequireConfirmation(h.logger)).Delete("/{id}", h.Delete)
	})
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		customer, err := h.customers.FindByName(r.Context(), name)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
				return
			}
			h.logger.Error("Failed to find customer", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to find customer")
			return
		}
		middleware.RespondWithJSON(w, http.StatusOK, customer)
		return
	}

	customers, err := h.customers.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list customers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	var req CustomerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer := &domain.Customer{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := h.customers.Update(r.Context(), customer); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Failed to update customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Failed to delete customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
