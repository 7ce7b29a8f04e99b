package command

import (
	"context"
	"errors"

	"github.com/example/pocket-shop/internal/domain/cart"
	"github.com/example/pocket-shop/internal/domain/product"
	"go.uber.org/zap"
)

var ErrItemNotInCart = errors.New("item not in cart")

type Handler struct {
	cart    *cart.Store
	catalog product.Source
	logger  *zap.Logger
}

func NewHandler(cartStore *cart.Store, catalog product.Source, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cart:    cartStore,
		catalog: catalog,
		logger:  logger,
	}
}

// AddToCart looks the product up in the catalog and appends it with quantity 1
func (h *Handler) AddToCart(ctx context.Context, cmd AddToCart) (cart.State, error) {
	p, ok, err := h.catalog.Get(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, product.ErrProductNotFound
	}

	state := h.cart.Dispatch(ctx, cart.AddToCart{Product: p})
	h.logger.Debug("Added to cart", zap.Int("product_id", p.ID), zap.Int("count", len(state)))
	return state, nil
}

// RemoveFromCart drops every line with the product id. Unknown ids are a no-op.
func (h *Handler) RemoveFromCart(ctx context.Context, cmd RemoveFromCart) cart.State {
	return h.cart.Dispatch(ctx, cart.RemoveFromCart{ProductID: cmd.ProductID})
}

func (h *Handler) ClearCart(ctx context.Context, _ ClearCart) cart.State {
	return h.cart.Dispatch(ctx, cart.ClearCart{})
}

// UpdateQuantity applies the Cart screen guard before dispatching:
// the quantity must be within 1..stock of the line item.
func (h *Handler) UpdateQuantity(ctx context.Context, cmd UpdateQuantity) (cart.State, error) {
	item, ok := h.cart.Find(cmd.ProductID)
	if !ok {
		return nil, ErrItemNotInCart
	}
	if err := cart.ValidateQuantity(item, cmd.Quantity); err != nil {
		return nil, err
	}
	return h.cart.Dispatch(ctx, cart.UpdateQuantity{
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
	}), nil
}

func (h *Handler) IncrementQuantity(ctx context.Context, cmd IncrementQuantity) (cart.State, error) {
	item, ok := h.cart.Find(cmd.ProductID)
	if !ok {
		return nil, ErrItemNotInCart
	}
	return h.UpdateQuantity(ctx, UpdateQuantity{
		ProductID: cmd.ProductID,
		Quantity:  cart.EffectiveQuantity(item.Quantity) + 1,
	})
}

// DecrementQuantity never goes below 1; at 1 the cart is returned unchanged.
func (h *Handler) DecrementQuantity(ctx context.Context, cmd DecrementQuantity) (cart.State, error) {
	item, ok := h.cart.Find(cmd.ProductID)
	if !ok {
		return nil, ErrItemNotInCart
	}
	current := cart.EffectiveQuantity(item.Quantity)
	if current <= 1 {
		return h.cart.Items(), nil
	}
	return h.UpdateQuantity(ctx, UpdateQuantity{
		ProductID: cmd.ProductID,
		Quantity:  current - 1,
	})
}
