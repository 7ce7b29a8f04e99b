package api

import (
	"net/http"

	"github.com/example/pocket-shop/internal/api/middleware"
	"github.com/example/pocket-shop/internal/auth"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
	Logger       *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	requireAuth := middleware.AuthMiddleware(cfg.JWTService)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}
	withUser := middleware.OptionalAuthMiddleware(cfg.JWTService)
	optional := func(h http.HandlerFunc) http.Handler {
		return withUser(h)
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", cfg.AuthHandlers.Register)
	mux.HandleFunc("POST /api/auth/login", cfg.AuthHandlers.Login)
	mux.HandleFunc("POST /api/auth/logout", cfg.AuthHandlers.Logout)
	mux.Handle("GET /api/auth/me", protected(cfg.AuthHandlers.Me))

	// Screens
	mux.Handle("GET /api/screen", optional(cfg.Handlers.GetScreen))
	mux.Handle("POST /api/screen", optional(cfg.Handlers.Navigate))
	mux.Handle("POST /api/screen/back", optional(cfg.Handlers.Back))

	// Products
	mux.Handle("GET /api/products", protected(cfg.Handlers.GetProducts))
	mux.Handle("GET /api/products/{id}", protected(cfg.Handlers.GetProduct))

	// Cart
	mux.Handle("GET /api/cart", protected(cfg.Handlers.GetCart))
	mux.Handle("DELETE /api/cart", protected(cfg.Handlers.ClearCart))
	mux.Handle("POST /api/cart/items", protected(cfg.Handlers.AddToCart))
	mux.Handle("DELETE /api/cart/items/{id}", protected(cfg.Handlers.RemoveFromCart))
	mux.Handle("PUT /api/cart/items/{id}", protected(cfg.Handlers.UpdateQuantity))
	mux.Handle("POST /api/cart/items/{id}/increment", protected(cfg.Handlers.IncrementQuantity))
	mux.Handle("POST /api/cart/items/{id}/decrement", protected(cfg.Handlers.DecrementQuantity))
	mux.Handle("POST /api/cart/checkout", protected(cfg.Handlers.Checkout))

	return middleware.RequestLogger(logger)(mux)
}
