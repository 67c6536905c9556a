package model

import (
	"strings"
	"time"
)

// DateLayout is the stored format of last_count_date.
const DateLayout = "2006-01-02"

// ItemFields holds every attribute of an inventory item except its id.
// Candidates coming out of the form validator use this shape; the
// repository attaches the id.
type ItemFields struct {
	SKU          string `json:"sku,omitempty"`
	Name         string `json:"item_name"`
	Quantity     int    `json:"quantity_counted"`
	Unit         string `json:"unit_of_measure,omitempty"`
	Location     string `json:"location_in_warehouse,omitempty"`
	Category     string `json:"category"`
	Notes        string `json:"condition_notes,omitempty"`
	LastCount    string `json:"last_count_date"`
	ReorderLevel int    `json:"reorder_level"`
	Supplier     string `json:"supplier,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}

// InventoryItem is one warehouse stock record. The id is assigned at
// creation and never changes; every other field is replaceable on edit.
type InventoryItem struct {
	ID string `json:"id"`
	ItemFields
}

// LowStock reports whether the counted quantity is at or below the
// reorder level (boundary inclusive).
func (f ItemFields) LowStock() bool {
	return f.Quantity <= f.ReorderLevel
}

// LastCountTime parses last_count_date as a calendar date.
func (f ItemFields) LastCountTime() (time.Time, error) {
	return time.Parse(DateLayout, f.LastCount)
}

// Enumerated categories offered by the item form. The form also accepts
// free-form custom text, so stored categories are not limited to these.
const (
	CategorySafetyGear = "Safety Gear"
	CategoryEquipment  = "Equipment"
	CategoryPackaging  = "Packaging"
	CategoryChemicals  = "Chemicals"
	CategoryTools      = "Tools"
	CategoryOther      = "Other"
)

// Categories lists the enumerated category values in form order.
func Categories() []string {
	return []string{
		CategorySafetyGear,
		CategoryEquipment,
		CategoryPackaging,
		CategoryChemicals,
		CategoryTools,
		CategoryOther,
	}
}

// ResolveCategory collapses the form's enumerated selection and custom
// override into the single stored category. Non-blank custom text wins.
func ResolveCategory(selected, custom string) string {
	if c := strings.TrimSpace(custom); c != "" {
		return c
	}
	return strings.TrimSpace(selected)
}
