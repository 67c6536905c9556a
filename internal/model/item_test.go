package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowStockBoundary(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		reorder  int
		low      bool
	}{
		{"below reorder level", 3, 5, true},
		{"at reorder level", 5, 5, true},
		{"one above reorder level", 6, 5, false},
		{"zero quantity zero reorder", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ItemFields{Quantity: tt.quantity, ReorderLevel: tt.reorder}
			assert.Equal(t, tt.low, f.LowStock())
		})
	}
}

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		custom   string
		want     string
	}{
		{"enumerated only", CategoryEquipment, "", CategoryEquipment},
		{"custom overrides enumerated", CategoryEquipment, "Spare Parts", "Spare Parts"},
		{"blank custom falls back", CategoryChemicals, "   ", CategoryChemicals},
		{"custom only", "", "Lubricants", "Lubricants"},
		{"both empty", "", "", ""},
		{"whitespace trimmed", " Packaging ", "", "Packaging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCategory(tt.selected, tt.custom))
		})
	}
}

func TestLastCountTime(t *testing.T) {
	f := ItemFields{LastCount: "2024-02-01"}
	parsed, err := f.LastCountTime()
	assert.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, 2, int(parsed.Month()))

	f.LastCount = "not-a-date"
	_, err = f.LastCountTime()
	assert.Error(t, err)
}
