package transport

import (
	"errors"
	"net/http"

	"movearena-pos/internal/middleware"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OpenTableRequest opens a table with an empty cart
type OpenTableRequest struct {
	TableNumber string `json:"table_number" validate:"required"`
}

// TableHandler handles HTTP requests for table orders. An order moves
// between the operator's draft and a table: park stores the draft
// against the table, load brings it back for editing or settlement.
type TableHandler struct {
	tables service.TableService
	drafts service.DraftService
	logger *zap.Logger
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(tables service.TableService, drafts service.DraftService, logger *zap.Logger) *TableHandler {
	return &TableHandler{tables: tables, drafts: drafts, logger: logger}
}

// RegisterRoutes registers all table routes
func (h *TableHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/tables", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.List)
		r.Post("/", h.Open)
		r.Get("/{number}", h.Get)
		r.Post("/{number}/park", h.Park)
		r.Post("/{number}/load", h.Load)
		r.With(middleware.RequireConfirmation(h.logger)).Delete("/{number}", h.Abandon)
	})
}

func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.tables.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list tables", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list tables")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *TableHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenTableRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.tables.Open(r.Context(), req.TableNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTableNumber):
			middleware.RespondWithError(w, http.StatusBadRequest, "table number is required")
		case errors.Is(err, repository.ErrTableAlreadyOpen):
			middleware.RespondWithError(w, http.StatusConflict, "table already has an open order")
		default:
			h.logger.Error("Failed to open table", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to open table")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.tables.Get(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		if errors.Is(err, repository.ErrTableOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "table order not found")
			return
		}
		h.logger.Error("Failed to get table", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get table")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Park stores the operator's current draft against the table and clears
// the draft, freeing the register for the next order
func (h *TableHandler) Park(w http.ResponseWriter, r *http.Request) {
	opID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	tableNumber := chi.URLParam(r, "number")

	draft, err := h.drafts.Get(r.Context(), opID)
	if err != nil {
		h.logger.Error("Failed to load draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load draft")
		return
	}

	order, err := h.tables.Get(r.Context(), tableNumber)
	if err != nil {
		if !errors.Is(err, repository.ErrTableOrderNotFound) {
			h.logger.Error("Failed to get table", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get table")
			return
		}
		order, err = h.tables.Open(r.Context(), tableNumber)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	order.Items = draft.Items
	order.CustomerName = draft.CustomerName
	order.CustomerPhone = draft.CustomerPhone

	if err := h.tables.Save(r.Context(), order); err != nil {
		h.logger.Error("Failed to park order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to park order")
		return
	}

	if err := h.drafts.Clear(r.Context(), opID); err != nil {
		h.logger.Warn("Failed to clear draft after parking", zap.Error(err))
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Load replaces the operator's draft with the table's cart so it can be
// extended or settled
func (h *TableHandler) Load(w http.ResponseWriter, r *http.Request) {
	opID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	order, err := h.tables.Get(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		if errors.Is(err, repository.ErrTableOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "table order not found")
			return
		}
		h.logger.Error("Failed to get table", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get table")
		return
	}

	draft, err := h.drafts.LoadTable(r.Context(), opID, order)
	if err != nil {
		h.logger.Error("Failed to load table into draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load table into draft")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, draft)
}

// Abandon frees the table without settling; the confirmation header is
// required because the cart is discarded
func (h *TableHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.tables.Abandon(r.Context(), chi.URLParam(r, "number")); err != nil {
		if errors.Is(err, repository.ErrTableOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "table order not found")
			return
		}
		h.logger.Error("Failed to abandon table", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to abandon table")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "table freed"})
}
