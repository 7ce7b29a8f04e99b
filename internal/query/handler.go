package query

import (
	"context"

	"github.com/example/pocket-shop/internal/domain/cart"
	"github.com/example/pocket-shop/internal/domain/product"
	"github.com/example/pocket-shop/internal/readmodel"
	"go.uber.org/zap"
)

type Handler struct {
	cart    *cart.Store
	catalog product.Source
	logger  *zap.Logger
}

func NewHandler(cartStore *cart.Store, catalog product.Source, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{cart: cartStore, catalog: catalog, logger: logger}
}

// Products

// ListProducts loads the catalog, including its simulated latency.
func (h *Handler) ListProducts(ctx context.Context) ([]ProductReadModel, error) {
	products, err := h.catalog.Load(ctx)
	if err != nil {
		h.logger.Warn("Error listing products", zap.Error(err))
		return nil, err
	}
	return readmodel.FromProducts(products), nil
}

func (h *Handler) GetProduct(ctx context.Context, id int) (*ProductReadModel, bool, error) {
	p, ok, err := h.catalog.Get(ctx, id)
	if err != nil {
		h.logger.Warn("Error getting product", zap.Int("product_id", id), zap.Error(err))
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	rm := readmodel.FromProduct(p)
	return &rm, true, nil
}

// Cart

func (h *Handler) GetCart() CartReadModel {
	return readmodel.FromCart(h.cart.ID(), h.cart.Items())
}

func (h *Handler) CartCount() int {
	return h.cart.Count()
}

func (h *Handler) Checkout() CheckoutReadModel {
	return CheckoutReadModel{
		CartID:  h.cart.ID(),
		Summary: cart.Checkout(h.cart.Items()),
	}
}
