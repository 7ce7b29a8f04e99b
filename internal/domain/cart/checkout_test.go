package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(id int, price, discount string, qty int) Item {
	return Item{Product: newProduct(id, price, discount, 100), Quantity: qty}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestCheckout_ReferenceExample(t *testing.T) {
	items := []Item{
		item(1, "100", "0", 2),
		item(2, "50", "50", 1),
	}

	summary := Checkout(items)

	assertDecimal(t, "225.00", summary.Total)
	assertDecimal(t, "250", summary.Subtotal)
	assertDecimal(t, "25", summary.Savings)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Len(t, summary.Lines, 2)
	assertDecimal(t, "25", summary.Lines[1].UnitPrice)
	assertDecimal(t, "200", summary.Lines[0].LineTotal)
}

func TestCheckout_Empty(t *testing.T) {
	summary := Checkout(nil)

	assert.True(t, summary.Total.IsZero())
	assert.Equal(t, 0, summary.ItemCount)
	assert.Empty(t, summary.Lines)
}

func TestCheckout_NonPositiveQuantityCountsAsOne(t *testing.T) {
	tests := []struct {
		name string
		qty  int
	}{
		{"zero", 0},
		{"negative", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := Total([]Item{item(1, "19.99", "0", tt.qty)})
			assertDecimal(t, "19.99", total)
		})
	}
}

func TestCheckout_RoundsToTwoPlaces(t *testing.T) {
	// 549 * 87.04 / 100 = 477.8496 per unit
	total := Total([]Item{item(1, "549", "12.96", 3)})

	assertDecimal(t, "1433.55", total)
}

func TestCheckout_OrderIndependent(t *testing.T) {
	items := []Item{
		item(1, "549", "12.96", 2),
		item(2, "13", "8.4", 5),
		item(3, "40", "0", 1),
	}
	reversed := []Item{items[2], items[1], items[0]}

	assert.True(t, Total(items).Equal(Total(reversed)))
}

func TestCheckout_DoublingQuantitiesDoublesTotal(t *testing.T) {
	items := []Item{
		item(1, "100", "0", 2),
		item(2, "50", "50", 1),
		item(3, "12", "25", 3),
	}
	doubled := make([]Item, len(items))
	for i, it := range items {
		it.Quantity *= 2
		doubled[i] = it
	}

	assert.True(t, Total(items).Mul(decimal.NewFromInt(2)).Equal(Total(doubled)))
}

func TestEffectiveQuantity(t *testing.T) {
	assert.Equal(t, 1, EffectiveQuantity(0))
	assert.Equal(t, 1, EffectiveQuantity(-1))
	assert.Equal(t, 7, EffectiveQuantity(7))
}
