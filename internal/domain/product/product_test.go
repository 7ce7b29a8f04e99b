package product

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{ID: 1, Title: "Phone", Price: decimal.NewFromInt(100), Stock: 5},
		{ID: 2, Title: "Laptop", Price: decimal.NewFromInt(50), DiscountPercentage: decimal.NewFromInt(50), Stock: 3},
	}
}

// ============================================
// Pricing Tests
// ============================================

func TestProduct_EffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount string
		expected string
	}{
		{"no discount", "100", "0", "100"},
		{"half off", "50", "50", "25"},
		{"fractional discount", "549", "12.96", "477.8496"},
		{"full discount", "10", "100", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{
				Price:              decimal.RequireFromString(tt.price),
				DiscountPercentage: decimal.RequireFromString(tt.discount),
			}
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(p.EffectivePrice()),
				"got %s", p.EffectivePrice())
		})
	}
}

// ============================================
// StaticSource Tests
// ============================================

func TestStaticSource_Load_PreservesOrder(t *testing.T) {
	src := NewStaticSource(testProducts(), 0)

	products, err := src.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 2, products[1].ID)
}

func TestStaticSource_Load_ReturnsCopy(t *testing.T) {
	src := NewStaticSource(testProducts(), 0)

	first, err := src.Load(context.Background())
	require.NoError(t, err)
	first[0].Title = "mutated"

	second, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Phone", second[0].Title)
}

func TestStaticSource_Load_WaitsForDelay(t *testing.T) {
	src := NewStaticSource(testProducts(), 20*time.Millisecond)

	start := time.Now()
	_, err := src.Load(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestStaticSource_Load_Cancelled(t *testing.T) {
	src := NewStaticSource(testProducts(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	products, err := src.Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, products)
}

func TestStaticSource_DuplicateIDsIgnored(t *testing.T) {
	products := append(testProducts(), Product{ID: 1, Title: "Duplicate"})
	src := NewStaticSource(products, 0)

	loaded, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	p, ok, err := src.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Phone", p.Title)
}

func TestStaticSource_Get(t *testing.T) {
	src := NewStaticSource(testProducts(), time.Hour)

	p, ok, err := src.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Laptop", p.Title)

	_, ok, err = src.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewBundledSource(t *testing.T) {
	src, err := NewBundledSource(0)
	require.NoError(t, err)

	products, err := src.Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, products)

	for _, p := range products {
		assert.NotZero(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.False(t, p.Price.IsNegative(), "price of %d", p.ID)
		assert.GreaterOrEqual(t, p.Stock, 0)
		assert.True(t, p.DiscountPercentage.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, p.DiscountPercentage.LessThanOrEqual(decimal.NewFromInt(100)))
	}
}

func TestParseDataset_Invalid(t *testing.T) {
	_, err := ParseDataset([]byte("{not json"))
	assert.Error(t, err)
}
