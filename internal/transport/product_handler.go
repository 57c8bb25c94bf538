package transport

import (
	"errors"
	"net/http"

	"movearena-pos/internal/middleware"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductRequest represents the product create/update payload. Money is
// carried as integer cents, never floats.
type ProductRequest struct {
	Name       string `json:"name" validate:"required"`
	Category   string `json:"category" validate:"required"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
	CostCents  int64  `json:"cost_cents" validate:"gte=0"`
	Stock      int    `json:"stock" validate:"gte=0"`
	ImageURL   string `json:"image_url"`
	Active     bool   `json:"active"`
}

// SetActiveRequest toggles a product's availability
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers all product routes. Reads are open to any
// authenticated operator; writes require the admin role.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.List)
		r.Get("/categories", h.Categories)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.logger))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Patch("/{id}/active", h.SetActive)

			r.With(middleware.RequireConfirmation(h.logger)).Post("/restore-defaults", h.RestoreDefaults)
			r.With(middleware.RequireConfirmation(h.logger)).Delete("/{id}", h.Delete)
		})
	})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	activeOnly := r.URL.Query().Get("active") == "true"

	products, err := h.catalog.List(r.Context(), category, activeOnly)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Create(r.Context(), service.ProductInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    money.Cents(req.PriceCents),
		Cost:     money.Cents(req.CostCents),
		Stock:    req.Stock,
		ImageURL: req.ImageURL,
		Active:   req.Active,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Update(r.Context(), id, service.ProductInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    money.Cents(req.PriceCents),
		Cost:     money.Cents(req.CostCents),
		Stock:    req.Stock,
		ImageURL: req.ImageURL,
		Active:   req.Active,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		if errors.Is(err, service.ErrInvalidProduct) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req SetActiveRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalog.SetActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to toggle product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to toggle product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// RestoreDefaults seeds the stock beverage catalog, leaving existing
// products untouched
func (h *ProductHandler) RestoreDefaults(w http.ResponseWriter, r *http.Request) {
	created, err := h.catalog.RestoreDefaults(r.Context())
	if err != nil {
		h.logger.Error("Failed to restore default catalog", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to restore default catalog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"created": created})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
