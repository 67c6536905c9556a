// Package form validates candidate items before they reach the
// repository. It takes raw string field values (as an HTML form or JSON
// body provides them) and produces the resolved fields plus a
// field-name → message map; an empty map means the candidate passed.
//
// Of the two required-field policies the source system shipped, this
// implements the relaxed one: item_name, category, and last_count_date
// are required, counts must be non-negative integers, and everything
// else is optional.
package form

import (
	"strconv"
	"strings"
	"time"

	"stocktake/internal/model"
)

// Fields is the raw form input for one candidate item. Category and
// CustomCategory are the two inputs of the category choice; the
// validator resolves them to a single value.
type Fields struct {
	SKU            string
	Name           string
	Quantity       string
	Unit           string
	Location       string
	Category       string
	CustomCategory string
	Notes          string
	LastCount      string
	ReorderLevel   string
	Supplier       string
	ImageURL       string
}

// Errors maps a field name to a human-readable message. Field names
// match the persistence-format names so the presentation layer can
// place messages next to the offending input.
type Errors map[string]string

// Validate checks every field and returns the resolved fields together
// with the error map. The resolved fields are only meaningful when the
// map is empty.
func Validate(raw Fields) (model.ItemFields, Errors) {
	errs := Errors{}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		errs["item_name"] = "Item name is required"
	}

	quantity := parseCount(raw.Quantity, "quantity_counted", "Quantity", errs)
	reorder := parseCount(raw.ReorderLevel, "reorder_level", "Reorder level", errs)

	lastCount := strings.TrimSpace(raw.LastCount)
	if lastCount == "" {
		errs["last_count_date"] = "Last count date is required"
	} else if _, err := time.Parse(model.DateLayout, lastCount); err != nil {
		errs["last_count_date"] = "Last count date must be a valid date (YYYY-MM-DD)"
	}

	category := model.ResolveCategory(raw.Category, raw.CustomCategory)
	if category == "" {
		errs["category"] = "Category is required"
	}

	fields := model.ItemFields{
		SKU:          strings.TrimSpace(raw.SKU),
		Name:         name,
		Quantity:     quantity,
		Unit:         strings.TrimSpace(raw.Unit),
		Location:     strings.TrimSpace(raw.Location),
		Category:     category,
		Notes:        strings.TrimSpace(raw.Notes),
		LastCount:    lastCount,
		ReorderLevel: reorder,
		Supplier:     strings.TrimSpace(raw.Supplier),
		ImageURL:     strings.TrimSpace(raw.ImageURL),
	}
	return fields, errs
}

// parseCount parses a non-negative integer count. Blank input counts as
// zero so empty number inputs don't block submission.
func parseCount(raw, field, label string, errs Errors) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		errs[field] = label + " must be a whole number"
		return 0
	}
	if n < 0 {
		errs[field] = label + " cannot be negative"
		return 0
	}
	return n
}
