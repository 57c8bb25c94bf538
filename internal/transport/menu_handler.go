package transport

import (
	"net/http"

	"movearena-pos/internal/menu"
	"movearena-pos/internal/middleware"
	"movearena-pos/internal/money"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MenuSize is the wire form of a sandwich size with its extra price table
type MenuSize struct {
	Key        string                 `json:"key"`
	Name       string                 `json:"name"`
	PriceCents money.Cents            `json:"price_cents"`
	Extras     map[string]money.Cents `json:"extras"`
}

// MenuResponse is the full composition menu the builder UI needs
type MenuResponse struct {
	Sizes      []MenuSize        `json:"sizes"`
	Meats      []menu.Option     `json:"meats"`
	Cheeses    []menu.Option     `json:"cheeses"`
	Salads     []string          `json:"salads"`
	Sauces     []menu.Option     `json:"sauces"`
	ExtraNames map[string]string `json:"extra_names"`
}

// MenuHandler serves the fixed composition menu
type MenuHandler struct {
	logger *zap.Logger
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(logger *zap.Logger) *MenuHandler {
	return &MenuHandler{logger: logger}
}

// RegisterRoutes registers the menu route
func (h *MenuHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/api/menu", h.Get)
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	sizes := make([]MenuSize, 0, len(menu.SizeKeys()))
	for _, key := range menu.SizeKeys() {
		size, _ := menu.SizeByKey(key)
		sizes = append(sizes, MenuSize{
			Key:        size.Key,
			Name:       size.Name,
			PriceCents: size.Price,
			Extras:     size.Extras,
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, MenuResponse{
		Sizes:      sizes,
		Meats:      menu.Meats,
		Cheeses:    menu.Cheeses,
		Salads:     menu.Salads,
		Sauces:     menu.Sauces,
		ExtraNames: menu.ExtraNames,
	})
}
