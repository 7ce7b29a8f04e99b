package cart

import "github.com/shopspring/decimal"

// Line is the priced view of one line item.
type Line struct {
	ProductID int             `json:"productId"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Summary is computed on demand from the cart contents.
type Summary struct {
	Lines     []Line          `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Savings   decimal.Decimal `json:"savings"`
	Total     decimal.Decimal `json:"total"`
}

// EffectiveQuantity falls back to 1 for non-positive quantities.
func EffectiveQuantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

// Checkout prices the items. Total is the sum of discounted unit price times
// effective quantity, rounded to 2 decimal places.
func Checkout(items []Item) Summary {
	summary := Summary{
		Lines:    make([]Line, 0, len(items)),
		Subtotal: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, item := range items {
		qty := EffectiveQuantity(item.Quantity)
		q := decimal.NewFromInt(int64(qty))
		unit := item.EffectivePrice()
		lineTotal := unit.Mul(q)

		summary.Lines = append(summary.Lines, Line{
			ProductID: item.ID,
			Title:     item.Title,
			UnitPrice: unit.Round(2),
			Quantity:  qty,
			LineTotal: lineTotal.Round(2),
		})
		summary.ItemCount += qty
		summary.Subtotal = summary.Subtotal.Add(item.Price.Mul(q))
		summary.Total = summary.Total.Add(lineTotal)
	}

	summary.Subtotal = summary.Subtotal.Round(2)
	summary.Total = summary.Total.Round(2)
	summary.Savings = summary.Subtotal.Sub(summary.Total)
	return summary
}

// Total is Checkout(items).Total.
func Total(items []Item) decimal.Decimal {
	return Checkout(items).Total
}
