package projection

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/pocket-shop/internal/domain/cart"
	"github.com/example/pocket-shop/internal/domain/product"
	"github.com/example/pocket-shop/internal/infrastructure/store/mocks"
	"github.com/example/pocket-shop/internal/readmodel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProjector() (*Projector, *mocks.MockKeyValueStore) {
	kv := mocks.NewMockKeyValueStore()
	return NewProjector(kv, nil), kv
}

func makeEvent(cartID, eventType string, version int, data any) []byte {
	jsonData, _ := json.Marshal(data)
	event := cart.Event{
		ID:            "event-123",
		AggregateID:   cartID,
		AggregateType: cart.AggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       version,
	}
	result, _ := json.Marshal(event)
	return result
}

func inEpoch(value []byte, epoch string) []byte {
	var event cart.Event
	_ = json.Unmarshal(value, &event)
	event.Epoch = epoch
	result, _ := json.Marshal(event)
	return result
}

func added(cartID string, version, productID int) []byte {
	return makeEvent(cartID, cart.EventItemAdded, version, cart.ItemAddedToCart{
		CartID: cartID, ProductID: productID, Title: "Widget", Quantity: 1, Price: "10", AddedAt: time.Now(),
	})
}

// ============================================
// Cart Event Tests
// ============================================

func TestProjector_HandleItemAdded(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()

	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 1, 7)))
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 2, 7)))

	a, ok := projector.Get(7)
	require.True(t, ok)
	assert.Equal(t, "Widget", a.Title)
	assert.Equal(t, 2, a.Added)
	assert.Equal(t, 2, a.InCart)
	assert.False(t, a.UpdatedAt.IsZero())
}

func TestProjector_HandleItemRemoved(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 1, 7)))
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 2, 7)))

	err := projector.HandleEvent(ctx, nil, makeEvent("c1", cart.EventItemRemoved, 3, cart.ItemRemovedFromCart{
		CartID: "c1", ProductID: 7, Removed: 2, RemovedAt: time.Now(),
	}))

	require.NoError(t, err)
	a, _ := projector.Get(7)
	assert.Equal(t, 2, a.Removed)
	assert.Equal(t, 0, a.InCart)
}

func TestProjector_HandleQuantityUpdated(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 1, 7)))

	require.NoError(t, projector.HandleEvent(ctx, nil, makeEvent("c1", cart.EventQuantityUpdated, 2,
		cart.ItemQuantityUpdated{CartID: "c1", ProductID: 7, Quantity: 3, Found: true})))
	require.NoError(t, projector.HandleEvent(ctx, nil, makeEvent("c1", cart.EventQuantityUpdated, 3,
		cart.ItemQuantityUpdated{CartID: "c1", ProductID: 8, Quantity: 3, Found: false})))

	a, _ := projector.Get(7)
	assert.Equal(t, 1, a.QuantityUpdate)
	_, ok := projector.Get(8)
	assert.False(t, ok, "updates for items not in the cart are ignored")
}

func TestProjector_HandleCartCleared(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 1, 7)))
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 2, 8)))
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c2", 1, 7)))

	require.NoError(t, projector.HandleEvent(ctx, nil, makeEvent("c1", cart.EventCartCleared, 3,
		cart.CartCleared{CartID: "c1", Items: 2, ClearedAt: time.Now()})))

	a7, _ := projector.Get(7)
	a8, _ := projector.Get(8)
	assert.Equal(t, 1, a7.InCart, "other carts are untouched")
	assert.Equal(t, 0, a8.InCart)
	assert.Equal(t, 2, a7.Added)
}

func TestProjector_SkipsDuplicateVersions(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()

	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 1, 7)))
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 1, 7)))

	a, _ := projector.Get(7)
	assert.Equal(t, 1, a.Added)
}

func TestProjector_IgnoresOtherAggregates(t *testing.T) {
	projector, _ := newTestProjector()
	value, _ := json.Marshal(cart.Event{AggregateType: "Order", EventType: "OrderPlaced", Version: 1})

	require.NoError(t, projector.HandleEvent(context.Background(), nil, value))
	assert.Empty(t, projector.Snapshot())
}

func TestProjector_InvalidPayload(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()

	assert.Error(t, projector.HandleEvent(ctx, nil, []byte("not json")))

	bad, _ := json.Marshal(cart.Event{
		AggregateID: "c1", AggregateType: cart.AggregateType, EventType: cart.EventItemAdded,
		Data: json.RawMessage(`"oops"`), Version: 1,
	})
	assert.Error(t, projector.HandleEvent(ctx, nil, bad))

	// a failed event does not advance the version
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 1, 7)))
	a, _ := projector.Get(7)
	assert.Equal(t, 1, a.Added)
}

// ============================================
// Store Integration Tests
// ============================================

func TestProjector_ConsumesStoreEvents(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()
	pub := &forwarder{handle: projector.HandleEvent}
	s := cart.NewStore("device", cart.WithPublisher(pub))
	p := product.Product{ID: 3, Title: "Gadget", Price: decimal.NewFromInt(5), Stock: 4}

	s.Dispatch(ctx, cart.AddToCart{Product: p})
	s.Dispatch(ctx, cart.AddToCart{Product: p})
	s.Dispatch(ctx, cart.UpdateQuantity{ProductID: 3, Quantity: 2})
	s.Dispatch(ctx, cart.RemoveFromCart{ProductID: 3})

	require.NoError(t, pub.err)
	a, ok := projector.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Gadget", a.Title)
	assert.Equal(t, 2, a.Added)
	assert.Equal(t, 2, a.Removed)
	assert.Equal(t, 1, a.QuantityUpdate)
	assert.Equal(t, 0, a.InCart)
}

func TestProjector_StoreRestartKeepsCounting(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()
	pub := &forwarder{handle: projector.HandleEvent}
	p := product.Product{ID: 3, Title: "Gadget", Price: decimal.NewFromInt(5), Stock: 10}

	first := cart.NewStore("device", cart.WithPublisher(pub))
	for i := 0; i < 3; i++ {
		first.Dispatch(ctx, cart.AddToCart{Product: p})
	}
	restarted := cart.NewStore("device", cart.WithPublisher(pub))
	for i := 0; i < 2; i++ {
		restarted.Dispatch(ctx, cart.AddToCart{Product: p})
	}

	require.NoError(t, pub.err)
	a, ok := projector.Get(3)
	require.True(t, ok)
	assert.Equal(t, 5, a.Added)
	assert.Equal(t, 2, a.InCart, "the restarted cart starts empty")
}

func TestProjector_SkipsSupersededEpoch(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()

	require.NoError(t, projector.HandleEvent(ctx, nil, inEpoch(added("device", 1, 7), "old")))
	require.NoError(t, projector.HandleEvent(ctx, nil, inEpoch(added("device", 1, 7), "new")))
	require.NoError(t, projector.HandleEvent(ctx, nil, inEpoch(added("device", 1, 7), "new")))
	require.NoError(t, projector.HandleEvent(ctx, nil, inEpoch(added("device", 2, 7), "old")))

	a, _ := projector.Get(7)
	assert.Equal(t, 2, a.Added)
	assert.Equal(t, 1, a.InCart)
}

func TestProjector_ConcurrentDispatchesAllProjected(t *testing.T) {
	projector, _ := newTestProjector()
	ctx := context.Background()
	pub := &forwarder{handle: projector.HandleEvent}
	s := cart.NewStore("device", cart.WithPublisher(pub))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.Dispatch(ctx, cart.AddToCart{Product: product.Product{ID: id, Title: "P", Price: decimal.NewFromInt(1), Stock: 1}})
		}(i)
	}
	wg.Wait()

	require.NoError(t, pub.err)
	snapshot := projector.Snapshot()
	require.Len(t, snapshot, 20)
	for _, a := range snapshot {
		assert.Equal(t, 1, a.Added, "product %d", a.ProductID)
	}
}

type forwarder struct {
	mu     sync.Mutex
	handle func(ctx context.Context, key, value []byte) error
	err    error
}

func (f *forwarder) Publish(ctx context.Context, key string, event any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(event)
	if err == nil {
		err = f.handle(ctx, []byte(key), data)
	}
	if err != nil && f.err == nil {
		f.err = err
	}
	return err
}

func TestProjector_Flush(t *testing.T) {
	projector, kv := newTestProjector()
	ctx := context.Background()
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 1, 9)))
	require.NoError(t, projector.HandleEvent(ctx, nil, added("c1", 2, 4)))

	require.NoError(t, projector.Flush(ctx))

	require.Len(t, kv.SetCalls, 1)
	assert.Equal(t, SnapshotKey, kv.SetCalls[0].Key)
	var snapshot []readmodel.ActivityReadModel
	require.NoError(t, json.Unmarshal(kv.SetCalls[0].Value, &snapshot))
	require.Len(t, snapshot, 2)
	assert.Equal(t, 4, snapshot[0].ProductID)
	assert.Equal(t, 9, snapshot[1].ProductID)
}

func TestProjector_Flush_Error(t *testing.T) {
	projector, kv := newTestProjector()
	kv.SetErr = errors.New("redis down")

	err := projector.Flush(context.Background())

	assert.ErrorContains(t, err, "redis down")
}

func TestProjector_Flush_NoStore(t *testing.T) {
	assert.NoError(t, NewProjector(nil, nil).Flush(context.Background()))
}
