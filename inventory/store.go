package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/kasuganosora/memorybox/kv"
	"github.com/kasuganosora/memorybox/model"
	"go.uber.org/zap"
)

// Store is the authoritative, newest-first item collection.
type Store interface {
	// ListAll returns the stored collection in order. An absent or
	// unreadable slot yields an empty list; only backend failures error.
	ListAll(ctx context.Context) ([]model.InventoryItem, error)
	Get(ctx context.Context, id string) (model.InventoryItem, error)
	// Create prepends item.
	Create(ctx context.Context, item model.InventoryItem) error
	// Update replaces the record with the same id in place. CreatedAt of
	// the stored record is kept.
	Update(ctx context.Context, item model.InventoryItem) error
	// Delete removes every record with id. Missing ids are not an error.
	Delete(ctx context.Context, id string) error
	// ReplaceAll overwrites the whole collection in one write.
	ReplaceAll(ctx context.Context, items []model.InventoryItem) error
}

// SlotStore keeps the collection as one JSON array in a kv slot. Every
// operation reads, modifies and rewrites the whole array. The mutex only
// orders writers inside this process.
type SlotStore struct {
	mu     sync.Mutex
	slots  kv.Store
	key    string
	logger *zap.Logger
}

// NewSlotStore creates a SlotStore over the slot named key.
func NewSlotStore(slots kv.Store, key string, logger *zap.Logger) *SlotStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotStore{slots: slots, key: key, logger: logger}
}

func (s *SlotStore) load(ctx context.Context) ([]model.InventoryItem, error) {
	raw, err := s.slots.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []model.InventoryItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inventory: read slot: %w", err)
	}
	var items []model.InventoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("corrupt item slot, treating as empty",
			zap.String("key", s.key), zap.Error(err))
		return []model.InventoryItem{}, nil
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	return items, nil
}

func (s *SlotStore) save(ctx context.Context, items []model.InventoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("inventory: encode: %w", err)
	}
	if err := s.slots.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("inventory: write slot: %w", err)
	}
	return nil
}

func (s *SlotStore) ListAll(ctx context.Context) ([]model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *SlotStore) Get(ctx context.Context, id string) (model.InventoryItem, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return model.InventoryItem{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.InventoryItem{}, ErrItemNotFound
}

func (s *SlotStore) Create(ctx context.Context, item model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == item.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
		}
	}
	next := make([]model.InventoryItem, 0, len(items)+1)
	next = append(next, item)
	next = append(next, items...)
	return s.save(ctx, next)
}

func (s *SlotStore) Update(ctx context.Context, item model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == item.ID {
			item.CreatedAt = items[i].CreatedAt
			items[i] = item
			return s.save(ctx, items)
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, item.ID)
}

func (s *SlotStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.save(ctx, kept)
}

func (s *SlotStore) ReplaceAll(ctx context.Context, items []model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items == nil {
		items = []model.InventoryItem{}
	}
	return s.save(ctx, items)
}
