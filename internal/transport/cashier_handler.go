package transport

import (
	"errors"
	"net/http"

	"movearena-pos/internal/middleware"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OpenSessionRequest starts a cashier session
type OpenSessionRequest struct {
	OpeningBalanceCents int64 `json:"opening_balance_cents" validate:"gte=0"`
}

// CashierHandler handles HTTP requests for cashier sessions
type CashierHandler struct {
	cashier service.CashierService
	logger  *zap.Logger
}

// NewCashierHandler creates a new CashierHandler
func NewCashierHandler(cashier service.CashierService, logger *zap.Logger) *CashierHandler {
	return &CashierHandler{cashier: cashier, logger: logger}
}

// RegisterRoutes registers all cashier routes
func (h *CashierHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cashier", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/open", h.Open)
		r.Get("/current", h.Current)
		r.Get("/balance", h.Balance)
		r.With(middleware.RequireConfirmation(h.logger)).Post("/close", h.Close)
		r.Get("/history", h.History)
	})
}

func (h *CashierHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.cashier.Open(r.Context(), money.Cents(req.OpeningBalanceCents))
	if err != nil {
		if errors.Is(err, repository.ErrSessionAlreadyOpen) {
			middleware.RespondWithError(w, http.StatusConflict, "a cashier session is already open")
			return
		}
		h.logger.Error("Failed to open cashier session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to open cashier session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, session)
}

func (h *CashierHandler) Current(w http.ResponseWriter, r *http.Request) {
	session, err := h.cashier.Current(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoOpenSession) {
			middleware.RespondWithError(w, http.StatusNotFound, "no cashier session is open")
			return
		}
		h.logger.Error("Failed to get current session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get current session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, session)
}

func (h *CashierHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.cashier.RunningBalance(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoOpenSession) {
			middleware.RespondWithError(w, http.StatusNotFound, "no cashier session is open")
			return
		}
		h.logger.Error("Failed to compute balance", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute balance")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, balance)
}

func (h *CashierHandler) Close(w http.ResponseWriter, r *http.Request) {
	session, err := h.cashier.Close(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoOpenSession) {
			middleware.RespondWithError(w, http.StatusNotFound, "no cashier session is open")
			return
		}
		h.logger.Error("Failed to close cashier session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to close cashier session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, session)
}

func (h *CashierHandler) History(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.cashier.History(r.Context())
	if err != nil {
		h.logger.Error("Failed to list cashier sessions", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list cashier sessions")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sessions)
}
