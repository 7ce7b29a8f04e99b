package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher receives cart events. kafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Store owns one cart. It starts empty and lives only in memory.
type Store struct {
	mu        sync.RWMutex
	pubMu     sync.Mutex // held from version bump to publish so events leave in order
	id        string
	epoch     string
	state     State
	version   int
	publisher Publisher
	logger    *zap.Logger
}

type Option func(*Store)

// WithPublisher forwards every dispatched command as an Event.
// Publish runs in version order and must not call back into the Store.
func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithLogger sets the logger used for publish failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(id string, opts ...Option) *Store {
	s := &Store{
		id:     id,
		epoch:  uuid.New().String(),
		state:  State{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ID() string { return s.id }

// Epoch identifies this Store instance. Versions restart at 1 for every epoch.
func (s *Store) Epoch() string { return s.epoch }

// Dispatch applies cmd and returns a snapshot of the new state.
// Publishing is best-effort; failures are logged and do not undo the change.
func (s *Store) Dispatch(ctx context.Context, cmd Command) State {
	s.mu.Lock()
	prev := s.state
	s.state = Apply(prev, cmd)
	s.version++
	version := s.version
	snapshot := s.state.clone()
	if s.publisher == nil {
		s.mu.Unlock()
		return snapshot
	}
	s.pubMu.Lock()
	s.mu.Unlock()
	defer s.pubMu.Unlock()

	s.publish(ctx, cmd, prev, version)
	return snapshot
}

// Items returns a snapshot of the current line items.
func (s *Store) Items() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Count is the number of line items, shown as the list screen badge.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state)
}

// Find returns the first line item for productID.
func (s *Store) Find(productID int) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Find(productID)
}

func (s *Store) publish(ctx context.Context, cmd Command, prev State, version int) {
	eventType, payload := s.eventFor(cmd, prev)
	if eventType == "" {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to marshal cart event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	event := Event{
		ID:            uuid.New().String(),
		AggregateID:   s.id,
		AggregateType: AggregateType,
		Epoch:         s.epoch,
		EventType:     eventType,
		Data:          data,
		Timestamp:     time.Now(),
		Version:       version,
	}
	if err := s.publisher.Publish(ctx, s.id, event); err != nil {
		s.logger.Warn("Failed to publish cart event",
			zap.String("cart_id", s.id),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}

func (s *Store) eventFor(cmd Command, prev State) (string, any) {
	now := time.Now()
	switch c := cmd.(type) {
	case AddToCart:
		return EventItemAdded, ItemAddedToCart{
			CartID:    s.id,
			ProductID: c.Product.ID,
			Title:     c.Product.Title,
			Quantity:  1,
			Price:     c.Product.EffectivePrice().StringFixed(2),
			AddedAt:   now,
		}
	case RemoveFromCart:
		removed := 0
		for _, item := range prev {
			if item.ID == c.ProductID {
				removed++
			}
		}
		return EventItemRemoved, ItemRemovedFromCart{
			CartID:    s.id,
			ProductID: c.ProductID,
			Removed:   removed,
			RemovedAt: now,
		}
	case ClearCart:
		return EventCartCleared, CartCleared{CartID: s.id, Items: len(prev), ClearedAt: now}
	case UpdateQuantity:
		return EventQuantityUpdated, ItemQuantityUpdated{
			CartID:    s.id,
			ProductID: c.ProductID,
			Quantity:  c.Quantity,
			Found:     prev.indexOf(c.ProductID) >= 0,
			UpdatedAt: now,
		}
	}
	return "", nil
}
