// Package memory is an in-process item store selected with DATABASE_URL=memory://.
// It is meant for local development and tests; data does not survive a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/itemstack/pkg/database"
	itemdomain "github.com/ghuser/itemstack/services/item/domain"
	"github.com/ghuser/itemstack/services/item/domain/models"
)

// ItemRepository implements repositories.ItemRepository over a map.
type ItemRepository struct {
	store *database.Store

	mu    sync.RWMutex
	seq   uint64
	items map[string]entry
}

// entry keeps the insertion sequence to order items created within the same millisecond.
type entry struct {
	item models.Item
	seq  uint64
}

// NewItemRepository returns an empty repository. Calls fail with
// database.ErrNotConnected until store reports connected.
func NewItemRepository(store *database.Store) *ItemRepository {
	return &ItemRepository{
		store: store,
		items: make(map[string]entry),
	}
}

func (r *ItemRepository) ready() error {
	if !r.store.Connected() {
		return database.ErrNotConnected
	}
	return nil
}

// List returns copies of all items, newest first.
func (r *ItemRepository) List(_ context.Context) ([]*models.Item, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]entry, 0, len(r.items))
	for _, e := range r.items {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].item.CreatedAt.Equal(entries[j].item.CreatedAt) {
			return entries[i].seq > entries[j].seq
		}
		return entries[i].item.CreatedAt.After(entries[j].item.CreatedAt)
	})

	items := make([]*models.Item, len(entries))
	for i := range entries {
		item := entries[i].item
		items[i] = &item
	}
	return items, nil
}

// GetByID returns a copy of the stored item.
func (r *ItemRepository) GetByID(_ context.Context, id string) (*models.Item, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := r.ready(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	item := e.item
	return &item, nil
}

// Create stores item under a new random UUID and writes the ID back onto item.
func (r *ItemRepository) Create(_ context.Context, item *models.Item) error {
	if err := r.ready(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	item.ID = uuid.New().String()
	r.items[item.ID] = entry{item: *item, seq: r.seq}
	return nil
}

// UpdateName renames an existing item.
func (r *ItemRepository) UpdateName(_ context.Context, id string, name models.ItemName) (*models.Item, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := r.ready(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	e.item.Rename(name)
	r.items[id] = e
	item := e.item
	return &item, nil
}

// Delete removes an item.
func (r *ItemRepository) Delete(_ context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := r.ready(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return itemdomain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", itemdomain.ErrInvalidItemID, id)
	}
	return nil
}
