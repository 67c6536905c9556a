// Package query computes derived views over an inventory snapshot:
// free-text filtering and stable single-field sorting. It never mutates
// the collection and never touches persistence.
package query

import (
	"sort"
	"strings"

	"stocktake/internal/model"
)

// Field is a sortable item field.
type Field string

const (
	ByName     Field = "item_name"
	BySKU      Field = "sku"
	ByCategory Field = "category"
	ByQuantity Field = "quantity_counted"
	ByDate     Field = "last_count_date"
)

// ParseField maps a request parameter to a sortable field, defaulting
// to item_name for anything unknown.
func ParseField(s string) Field {
	switch Field(s) {
	case BySKU, ByCategory, ByQuantity, ByDate:
		return Field(s)
	default:
		return ByName
	}
}

// Sort is the active sort state: one field, one direction.
type Sort struct {
	Field      Field
	Descending bool
}

// Toggle returns the sort state after selecting a field: re-selecting
// the active field flips the direction, a new field resets to ascending.
func (s Sort) Toggle(field Field) Sort {
	if s.Field == field {
		return Sort{Field: field, Descending: !s.Descending}
	}
	return Sort{Field: field}
}

// Apply filters the snapshot by term and sorts it by s, returning a new
// slice. The input is left untouched.
func Apply(items []model.InventoryItem, term string, s Sort) []model.InventoryItem {
	out := Filter(items, term)
	sortItems(out, s)
	return out
}

// Filter returns the items whose name, SKU, or category contains term,
// case-insensitively. An empty term matches everything.
func Filter(items []model.InventoryItem, term string) []model.InventoryItem {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		if term == "" || matches(item, term) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item model.InventoryItem, term string) bool {
	return strings.Contains(strings.ToLower(item.Name), term) ||
		strings.Contains(strings.ToLower(item.SKU), term) ||
		strings.Contains(strings.ToLower(item.Category), term)
}

// sortItems sorts in place. The sort is stable so equal keys keep their
// relative collection order.
func sortItems(items []model.InventoryItem, s Sort) {
	sort.SliceStable(items, func(i, j int) bool {
		if s.Descending {
			return less(items[j], items[i], s.Field)
		}
		return less(items[i], items[j], s.Field)
	})
}

func less(a, b model.InventoryItem, field Field) bool {
	switch field {
	case ByQuantity:
		return a.Quantity < b.Quantity
	case ByDate:
		return dateLess(a, b)
	case BySKU:
		return strings.ToLower(a.SKU) < strings.ToLower(b.SKU)
	case ByCategory:
		return strings.ToLower(a.Category) < strings.ToLower(b.Category)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

// dateLess compares last_count_date by calendar value, falling back to
// case-insensitive lexical order when either side does not parse.
func dateLess(a, b model.InventoryItem) bool {
	at, aerr := a.LastCountTime()
	bt, berr := b.LastCountTime()
	if aerr != nil || berr != nil {
		return strings.ToLower(a.LastCount) < strings.ToLower(b.LastCount)
	}
	return at.Before(bt)
}
