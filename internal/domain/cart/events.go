package cart

import (
	"encoding/json"
	"time"
)

const AggregateType = "Cart"

const (
	EventItemAdded       = "ItemAddedToCart"
	EventItemRemoved     = "ItemRemovedFromCart"
	EventCartCleared     = "CartCleared"
	EventQuantityUpdated = "ItemQuantityUpdated"
)

// Event is the envelope published for every dispatched command.
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	Epoch         string          `json:"epoch,omitempty"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
}

type ItemAddedToCart struct {
	CartID    string    `json:"cart_id"`
	ProductID int       `json:"product_id"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price"`
	AddedAt   time.Time `json:"added_at"`
}

type ItemRemovedFromCart struct {
	CartID    string    `json:"cart_id"`
	ProductID int       `json:"product_id"`
	Removed   int       `json:"removed"`
	RemovedAt time.Time `json:"removed_at"`
}

type CartCleared struct {
	CartID    string    `json:"cart_id"`
	Items     int       `json:"items"`
	ClearedAt time.Time `json:"cleared_at"`
}

type ItemQuantityUpdated struct {
	CartID    string    `json:"cart_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Found     bool      `json:"found"`
	UpdatedAt time.Time `json:"updated_at"`
}
