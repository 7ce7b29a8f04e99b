package product

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

var hundred = decimal.NewFromInt(100)

// Product is a read-only catalog entry. Field names follow the bundled dataset.
type Product struct {
	ID                 int             `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Rating             decimal.Decimal `json:"rating"`
	Thumbnail          string          `json:"thumbnail"`
	Stock              int             `json:"stock"`
}

// HasDiscount reports whether a strictly positive discount applies.
func (p Product) HasDiscount() bool {
	return p.DiscountPercentage.IsPositive()
}

// EffectivePrice is the unit price after discount:
// price * (100 - discountPercentage) / 100, or price when there is no discount.
func (p Product) EffectivePrice() decimal.Decimal {
	if !p.HasDiscount() {
		return p.Price
	}
	return p.Price.Mul(hundred.Sub(p.DiscountPercentage)).Div(hundred)
}
