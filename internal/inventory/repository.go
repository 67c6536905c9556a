// Package inventory owns the in-memory item collection and is the sole
// writer to the persistence adapter. Every mutation re-serializes the
// whole collection under one fixed key: always-consistent snapshots at
// the cost of no incremental diffing, which is fine at the expected
// scale of hundreds of items.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"stocktake/internal/kvstore"
	"stocktake/internal/model"
)

// collectionKey is the fixed adapter key holding the serialized collection.
const collectionKey = "warehouse_inventory"

// ErrNotFound is returned when an update targets an id that is not in
// the collection.
var ErrNotFound = errors.New("item not found")

// PersistError reports a failed adapter write. The in-memory mutation
// has already been applied and stands; callers should surface the
// failure as a notice and carry on, since the next successful write
// reconciles the stored snapshot.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persisting inventory: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Repository is the ordered in-memory item collection. New items are
// prepended. Access is mutex-guarded because HTTP handlers run
// concurrently.
type Repository struct {
	mu    sync.Mutex
	kv    *kvstore.Store
	items []model.InventoryItem
}

// New creates a repository over the given adapter. Call Load before use.
func New(kv *kvstore.Store) *Repository {
	return &Repository{kv: kv}
}

// Load reads the stored collection. An absent or unparsable value seeds
// the demonstration dataset instead of failing; only an adapter read
// failure is an error.
func (r *Repository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.kv.Get(ctx, collectionKey)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}

	if raw != nil {
		var items []model.InventoryItem
		if err := json.Unmarshal(raw, &items); err == nil {
			r.items = items
			return nil
		}
		// Unparsable stored data: fall through to the seed.
	}

	r.items = SeedItems()
	if err := r.persist(ctx); err != nil {
		return err
	}
	return nil
}

// List returns a copy of the current snapshot.
func (r *Repository) List() []model.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]model.InventoryItem, len(r.items))
	copy(snapshot, r.items)
	return snapshot
}

// Get returns the item with the given id.
func (r *Repository) Get(id string) (model.InventoryItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, true
		}
	}
	return model.InventoryItem{}, false
}

// Add assigns a fresh id to the candidate, prepends it to the collection,
// and persists. Validation is the caller's job. A *PersistError means the
// item was added in memory but the write failed.
func (r *Repository) Add(ctx context.Context, fields model.ItemFields) (model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := model.InventoryItem{
		ID:         uuid.NewString(),
		ItemFields: fields,
	}
	r.items = append([]model.InventoryItem{item}, r.items...)

	return item, r.persist(ctx)
}

// Update replaces the fields of the item with the given id, preserving
// the id and the item's position, and persists. Returns ErrNotFound if
// no item has that id.
func (r *Repository) Update(ctx context.Context, id string, fields model.ItemFields) (model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			updated := model.InventoryItem{ID: id, ItemFields: fields}
			r.items[i] = updated
			return updated, r.persist(ctx)
		}
	}
	return model.InventoryItem{}, ErrNotFound
}

// Remove deletes the item with the given id and its photo. Removing an
// absent id is a no-op, not an error.
func (r *Repository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			// Best-effort photo cleanup; the collection write decides
			// the returned error.
			_ = r.kv.Delete(ctx, photoKey(id))
			return r.persist(ctx)
		}
	}
	return nil
}

// LowStock returns the items whose counted quantity is at or below
// their reorder level, in collection order.
func (r *Repository) LowStock() []model.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	var low []model.InventoryItem
	for _, item := range r.items {
		if item.LowStock() {
			low = append(low, item)
		}
	}
	return low
}

// LowStockCount returns the number of low-stock items.
func (r *Repository) LowStockCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, item := range r.items {
		if item.LowStock() {
			count++
		}
	}
	return count
}

// persist writes the whole collection to the adapter. Callers hold r.mu.
func (r *Repository) persist(ctx context.Context) error {
	raw, err := json.Marshal(r.items)
	if err != nil {
		return &PersistError{Err: err}
	}
	if err := r.kv.Set(ctx, collectionKey, raw); err != nil {
		return &PersistError{Err: err}
	}
	return nil
}

// SeedItems is the demonstration dataset used when no stored data exists.
func SeedItems() []model.InventoryItem {
	return []model.InventoryItem{
		{
			ID: uuid.NewString(),
			ItemFields: model.ItemFields{
				SKU:          "SKU001",
				Name:         "Industrial Safety Helmet",
				Quantity:     45,
				Unit:         "pieces",
				Location:     "Aisle 1, Shelf A",
				Category:     model.CategorySafetyGear,
				LastCount:    "2024-01-15",
				ReorderLevel: 10,
			},
		},
		{
			ID: uuid.NewString(),
			ItemFields: model.ItemFields{
				SKU:          "SKU002",
				Name:         "Heavy Duty Work Gloves",
				Quantity:     5,
				Unit:         "pairs",
				Location:     "Aisle 1, Shelf B",
				Category:     model.CategorySafetyGear,
				LastCount:    "2024-01-14",
				ReorderLevel: 20,
			},
		},
		{
			ID: uuid.NewString(),
			ItemFields: model.ItemFields{
				SKU:          "SKU003",
				Name:         "Forklift Battery",
				Quantity:     8,
				Unit:         "pieces",
				Location:     "Aisle 3, Floor",
				Category:     model.CategoryEquipment,
				LastCount:    "2024-01-13",
				ReorderLevel: 2,
			},
		},
		{
			ID: uuid.NewString(),
			ItemFields: model.ItemFields{
				SKU:          "SKU004",
				Name:         "Cardboard Boxes Large",
				Quantity:     500,
				Unit:         "pieces",
				Location:     "Aisle 5, Shelf C",
				Category:     model.CategoryPackaging,
				LastCount:    "2024-01-12",
				ReorderLevel: 100,
			},
		},
		{
			ID: uuid.NewString(),
			ItemFields: model.ItemFields{
				SKU:          "SKU005",
				Name:         "Cleaning Solvent",
				Quantity:     25,
				Unit:         "liters",
				Location:     "Aisle 4, Shelf A",
				Category:     model.CategoryChemicals,
				LastCount:    "2024-01-11",
				ReorderLevel: 5,
			},
		},
	}
}
