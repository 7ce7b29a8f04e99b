package product

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"
)

//go:embed products.json
var bundledProducts []byte

// DefaultLoadDelay mirrors the list screen's simulated fetch.
const DefaultLoadDelay = 500 * time.Millisecond

// Source provides the catalog to the list screen.
type Source interface {
	Load(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, bool, error)
}

// StaticSource serves a fixed in-memory catalog.
type StaticSource struct {
	products []Product
	index    map[int]int
	delay    time.Duration
}

// NewStaticSource builds a source over products. Later duplicates of an id are ignored.
func NewStaticSource(products []Product, delay time.Duration) *StaticSource {
	s := &StaticSource{
		products: make([]Product, 0, len(products)),
		index:    make(map[int]int, len(products)),
		delay:    delay,
	}
	for _, p := range products {
		if _, dup := s.index[p.ID]; dup {
			continue
		}
		s.index[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	return s
}

// NewBundledSource loads the dataset compiled into the binary.
func NewBundledSource(delay time.Duration) (*StaticSource, error) {
	products, err := ParseDataset(bundledProducts)
	if err != nil {
		return nil, err
	}
	return NewStaticSource(products, delay), nil
}

// ParseDataset decodes a {"products": [...]} document.
func ParseDataset(data []byte) ([]Product, error) {
	var doc struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return doc.Products, nil
}

// Load waits out the simulated delay and returns a copy of the catalog in order.
func (s *StaticSource) Load(ctx context.Context) ([]Product, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// Get looks a product up by id without the load delay.
func (s *StaticSource) Get(ctx context.Context, id int) (Product, bool, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, false, err
	}
	i, ok := s.index[id]
	if !ok {
		return Product{}, false, nil
	}
	return s.products[i], true, nil
}
