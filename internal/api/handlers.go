package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/example/pocket-shop/internal/api/middleware"
	"github.com/example/pocket-shop/internal/command"
	"github.com/example/pocket-shop/internal/domain/cart"
	"github.com/example/pocket-shop/internal/query"
	"github.com/example/pocket-shop/internal/screen"
	"go.uber.org/zap"
)

// ScreenHeader reports the current screen on every cart and catalog response
const ScreenHeader = "X-Screen"

// Navigator is the part of screen.Router the handlers drive
type Navigator interface {
	screen.Navigator
	Back() screen.Name
	History() []screen.Name
}

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	screens      Navigator
	logger       *zap.Logger
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler, screens Navigator, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		screens:      screens,
		logger:       logger,
	}
}

type ScreenResponse struct {
	Current screen.Name   `json:"current"`
	History []screen.Name `json:"history"`
	User    string        `json:"user,omitempty"`
}

type NavigateRequest struct {
	Screen screen.Name `json:"screen"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Screen Handlers

func (h *Handlers) GetScreen(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.screenResponse(r))
}

func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !screen.Valid(req.Screen) {
		respondJSONError(w, "Unknown screen", http.StatusBadRequest)
		return
	}
	h.screens.Navigate(req.Screen)
	h.respond(w, http.StatusOK, h.screenResponse(r))
}

func (h *Handlers) Back(w http.ResponseWriter, r *http.Request) {
	h.screens.Back()
	h.respond(w, http.StatusOK, h.screenResponse(r))
}

// Product Handlers

// GetProducts opens the List screen and returns the catalog once loaded.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	h.screens.Navigate(screen.List)

	start := time.Now()
	products, err := h.queryHandler.ListProducts(r.Context())
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	h.logger.Debug("Catalog loaded", zap.Int("products", len(products)), zap.Duration("took", time.Since(start)))

	h.respond(w, http.StatusOK, map[string]any{
		"products":   products,
		"cartCount": h.queryHandler.CartCount(),
	})
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, found, err := h.queryHandler.GetProduct(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	if !found {
		respondJSONError(w, "Product not found", http.StatusNotFound)
		return
	}
	h.respond(w, http.StatusOK, p)
}

// Cart Handlers

// GetCart opens the Cart screen.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	h.screens.Navigate(screen.Cart)
	h.respond(w, http.StatusOK, h.queryHandler.GetCart())
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var cmd command.AddToCart
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if _, err := h.cmdHandler.AddToCart(r.Context(), cmd); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	h.respond(w, http.StatusCreated, h.queryHandler.GetCart())
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.cmdHandler.RemoveFromCart(r.Context(), command.RemoveFromCart{ProductID: id})
	h.respond(w, http.StatusOK, h.queryHandler.GetCart())
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cmdHandler.ClearCart(r.Context(), command.ClearCart{})
	h.respond(w, http.StatusOK, h.queryHandler.GetCart())
}

func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.cartResult(w, r, func() (cart.State, error) {
		return h.cmdHandler.UpdateQuantity(r.Context(), command.UpdateQuantity{ProductID: id, Quantity: req.Quantity})
	})
}

func (h *Handlers) IncrementQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.cartResult(w, r, func() (cart.State, error) {
		return h.cmdHandler.IncrementQuantity(r.Context(), command.IncrementQuantity{ProductID: id})
	})
}

func (h *Handlers) DecrementQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.cartResult(w, r, func() (cart.State, error) {
		return h.cmdHandler.DecrementQuantity(r.Context(), command.DecrementQuantity{ProductID: id})
	})
}

// Checkout only computes the summary. The cart is left as is.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.queryHandler.Checkout())
}

// Helper functions

func (h *Handlers) cartResult(w http.ResponseWriter, r *http.Request, fn func() (cart.State, error)) {
	if _, err := fn(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	h.respond(w, http.StatusOK, h.queryHandler.GetCart())
}

func (h *Handlers) respond(w http.ResponseWriter, status int, data any) {
	respondWithScreen(w, h.screens, status, data)
}

func respondWithScreen(w http.ResponseWriter, screens screen.Navigator, status int, data any) {
	w.Header().Set(ScreenHeader, string(screens.Current()))
	respondJSON(w, status, data)
}

// screenResponse includes the signed-in user when the session cookie or bearer token is valid.
func (h *Handlers) screenResponse(r *http.Request) ScreenResponse {
	return ScreenResponse{
		Current: h.screens.Current(),
		History: h.screens.History(),
		User:    middleware.GetEmail(r.Context()),
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondJSONError(w, "Invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
