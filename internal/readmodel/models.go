package readmodel

import (
	"time"

	"github.com/example/pocket-shop/internal/domain/cart"
	"github.com/example/pocket-shop/internal/domain/product"
	"github.com/shopspring/decimal"
)

// ProductReadModel is a catalog row as the list screen renders it
type ProductReadModel struct {
	ID                 int             `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	EffectivePrice     decimal.Decimal `json:"effectivePrice"`
	HasDiscount        bool            `json:"hasDiscount"`
	Rating             decimal.Decimal `json:"rating"`
	Thumbnail          string          `json:"thumbnail"`
	Stock              int             `json:"stock"`
}

// CartItemReadModel represents an item in the cart
type CartItemReadModel struct {
	ProductReadModel
	Quantity int `json:"quantity"`
}

// CartReadModel is the read model for the shopping cart
type CartReadModel struct {
	ID    string              `json:"id"`
	Items []CartItemReadModel `json:"items"`
	Count int                 `json:"count"`
}

// CheckoutReadModel wraps the summary shown on the Cart screen
type CheckoutReadModel struct {
	CartID string       `json:"cartId"`
	cart.Summary
}

// ActivityReadModel counts cart events for one product
type ActivityReadModel struct {
	ProductID      int       `json:"productId"`
	Title          string    `json:"title,omitempty"`
	Added          int       `json:"added"`
	Removed        int       `json:"removed"`
	QuantityUpdate int       `json:"quantityUpdates"`
	InCart         int       `json:"inCart"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromProduct(p product.Product) ProductReadModel {
	return ProductReadModel{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		EffectivePrice:     p.EffectivePrice().Round(2),
		HasDiscount:        p.HasDiscount(),
		Rating:             p.Rating,
		Thumbnail:          p.Thumbnail,
		Stock:              p.Stock,
	}
}

func FromProducts(products []product.Product) []ProductReadModel {
	out := make([]ProductReadModel, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromCart(id string, state cart.State) CartReadModel {
	items := make([]CartItemReadModel, 0, len(state))
	for _, item := range state {
		items = append(items, CartItemReadModel{
			ProductReadModel: FromProduct(item.Product),
			Quantity:         item.Quantity,
		})
	}
	return CartReadModel{ID: id, Items: items, Count: len(state)}
}
