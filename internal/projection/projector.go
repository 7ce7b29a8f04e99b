package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/pocket-shop/internal/domain/cart"
	"github.com/example/pocket-shop/internal/infrastructure/store"
	"github.com/example/pocket-shop/internal/readmodel"
	"go.uber.org/zap"
)

// SnapshotKey is where Flush writes the activity summary.
const SnapshotKey = "CartActivity"

// Projector folds cart events into per-product activity counters.
// Versions are only comparable within one store epoch. Events at or below the
// last seen version of their cart epoch are skipped, so redelivered messages
// are harmless. A new epoch means the producing process restarted with an empty
// cart, so the previous epoch's lines are dropped and its late events ignored.
type Projector struct {
	mu       sync.Mutex
	activity map[int]*readmodel.ActivityReadModel
	lines    map[string]map[int]int // cart id -> product id -> line items
	cursors  map[string]cursor
	retired  map[string]bool // epochs superseded by a newer one
	kv       store.KeyValueStore
	logger   *zap.Logger
}

type cursor struct {
	epoch   string
	version int
}

func NewProjector(kv store.KeyValueStore, logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{
		activity: make(map[int]*readmodel.ActivityReadModel),
		lines:    make(map[string]map[int]int),
		cursors:  make(map[string]cursor),
		retired:  make(map[string]bool),
		kv:       kv,
		logger:   logger,
	}
}

func (p *Projector) HandleEvent(ctx context.Context, key, value []byte) error {
	var event cart.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}
	if event.AggregateType != cart.AggregateType {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.retired[event.Epoch] {
		p.logger.Debug("Skipping event from superseded epoch",
			zap.String("cart_id", event.AggregateID), zap.String("epoch", event.Epoch))
		return nil
	}
	cur := p.cursors[event.AggregateID]
	if event.Epoch != cur.epoch {
		p.restart(event.AggregateID, cur.epoch, event.Timestamp)
		cur = cursor{epoch: event.Epoch}
		p.cursors[event.AggregateID] = cur
	}
	if event.Version > 0 && event.Version <= cur.version {
		p.logger.Debug("Skipping duplicate event",
			zap.String("cart_id", event.AggregateID),
			zap.String("epoch", event.Epoch),
			zap.Int("version", event.Version))
		return nil
	}

	p.logger.Debug("Received event", zap.String("event_type", event.EventType), zap.String("cart_id", event.AggregateID))

	if err := p.apply(event); err != nil {
		return fmt.Errorf("%s v%d: %w", event.EventType, event.Version, err)
	}
	if event.Version > 0 {
		p.cursors[event.AggregateID] = cursor{epoch: event.Epoch, version: event.Version}
	}
	return nil
}

// restart retires the old epoch of cartID and drops its line items.
func (p *Projector) restart(cartID, oldEpoch string, at time.Time) {
	if _, seen := p.cursors[cartID]; !seen {
		return
	}
	p.logger.Info("Cart epoch changed", zap.String("cart_id", cartID), zap.String("previous_epoch", oldEpoch))
	p.retired[oldEpoch] = true
	p.clearLines(cartID, at)
}

func (p *Projector) clearLines(cartID string, at time.Time) {
	lines := p.lines[cartID]
	p.lines[cartID] = make(map[int]int)
	for id := range lines {
		p.product(id, at).InCart = p.inCart(id)
	}
}

func (p *Projector) apply(event cart.Event) error {
	lines := p.cartLines(event.AggregateID)

	switch event.EventType {
	case cart.EventItemAdded:
		var e cart.ItemAddedToCart
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		a := p.product(e.ProductID, e.AddedAt)
		if e.Title != "" {
			a.Title = e.Title
		}
		a.Added++
		lines[e.ProductID]++
		a.InCart = p.inCart(e.ProductID)

	case cart.EventItemRemoved:
		var e cart.ItemRemovedFromCart
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		a := p.product(e.ProductID, e.RemovedAt)
		a.Removed += e.Removed
		delete(lines, e.ProductID)
		a.InCart = p.inCart(e.ProductID)

	case cart.EventQuantityUpdated:
		var e cart.ItemQuantityUpdated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		if !e.Found {
			return nil
		}
		p.product(e.ProductID, e.UpdatedAt).QuantityUpdate++

	case cart.EventCartCleared:
		var e cart.CartCleared
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.clearLines(event.AggregateID, e.ClearedAt)
	}
	return nil
}

func (p *Projector) cartLines(cartID string) map[int]int {
	lines, ok := p.lines[cartID]
	if !ok {
		lines = make(map[int]int)
		p.lines[cartID] = lines
	}
	return lines
}

func (p *Projector) product(id int, at time.Time) *readmodel.ActivityReadModel {
	a, ok := p.activity[id]
	if !ok {
		a = &readmodel.ActivityReadModel{ProductID: id}
		p.activity[id] = a
	}
	if at.After(a.UpdatedAt) {
		a.UpdatedAt = at
	}
	return a
}

func (p *Projector) inCart(productID int) int {
	total := 0
	for _, lines := range p.lines {
		total += lines[productID]
	}
	return total
}

// Snapshot returns the counters ordered by product id.
func (p *Projector) Snapshot() []readmodel.ActivityReadModel {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]readmodel.ActivityReadModel, 0, len(p.activity))
	for _, a := range p.activity {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (p *Projector) Get(productID int) (readmodel.ActivityReadModel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.activity[productID]
	if !ok {
		return readmodel.ActivityReadModel{}, false
	}
	return *a, true
}

// Flush writes the snapshot to the key-value store, if one is configured.
func (p *Projector) Flush(ctx context.Context) error {
	if p.kv == nil {
		return nil
	}
	data, err := json.Marshal(p.Snapshot())
	if err != nil {
		return err
	}
	if err := p.kv.Set(ctx, SnapshotKey, data); err != nil {
		return fmt.Errorf("failed to write activity snapshot: %w", err)
	}
	return nil
}
