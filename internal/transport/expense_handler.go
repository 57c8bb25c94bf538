package transport

import (
	"errors"
	"net/http"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/middleware"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpenseRequest records or edits an expense
type ExpenseRequest struct {
	Description string `json:"description" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Category    string `json:"category"`
}

// ExpenseHandler handles HTTP requests for expenses
type ExpenseHandler struct {
	expenses service.ExpenseService
	users    service.UserService
	logger   *zap.Logger
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenses service.ExpenseService, users service.UserService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, users: users, logger: logger}
}

// RegisterRoutes registers all expense routes
func (h *ExpenseHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/expenses", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.List)
		r.Post("/", h.Record)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.logger))
			r.Put("/{id}", h.Update)
			r.With(middleware.RequireConfirmation(h.logger)).Delete("/{id}", h.Delete)
		})
	})
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.expenses.Record(r.Context(), req.Description, money.Cents(req.AmountCents), req.Category, h.operatorName(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidExpense) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to record expense", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to record expense")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	var req ExpenseRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense := &domain.Expense{
		ID:          id,
		Date:        time.Now().UTC(),
		Description: req.Description,
		Amount:      money.Cents(req.AmountCents),
		Category:    req.Category,
		Operator:    h.operatorName(r),
	}
	if err := h.expenses.Update(r.Context(), expense); err != nil {
		switch {
		case errors.Is(err, repository.ErrExpenseNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "expense not found")
		case errors.Is(err, service.ErrInvalidExpense):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update expense", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update expense")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	if err := h.expenses.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "expense not found")
			return
		}
		h.logger.Error("Failed to delete expense", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}

func (h *ExpenseHandler) operatorName(r *http.Request) string {
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
