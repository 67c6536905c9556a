package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/model"
)

func validInput() Fields {
	return Fields{
		SKU:          "SKU007",
		Name:         "Shrink Wrap",
		Quantity:     "40",
		Unit:         "rolls",
		Location:     "Aisle 2, Shelf D",
		Category:     model.CategoryPackaging,
		LastCount:    "2024-02-01",
		ReorderLevel: "10",
		Supplier:     "PackCo",
	}
}

func TestValidCandidatePasses(t *testing.T) {
	fields, errs := Validate(validInput())
	require.Empty(t, errs)

	assert.Equal(t, "Shrink Wrap", fields.Name)
	assert.Equal(t, 40, fields.Quantity)
	assert.Equal(t, 10, fields.ReorderLevel)
	assert.Equal(t, model.CategoryPackaging, fields.Category)
	assert.Equal(t, "2024-02-01", fields.LastCount)
}

func TestAllFieldsCheckedNotJustFirstFailure(t *testing.T) {
	_, errs := Validate(Fields{Quantity: "-3", ReorderLevel: "abc"})

	assert.Contains(t, errs, "item_name")
	assert.Contains(t, errs, "quantity_counted")
	assert.Contains(t, errs, "reorder_level")
	assert.Contains(t, errs, "last_count_date")
	assert.Contains(t, errs, "category")
}

func TestFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Fields)
		field  string
	}{
		{"blank name", func(f *Fields) { f.Name = "   " }, "item_name"},
		{"negative quantity", func(f *Fields) { f.Quantity = "-1" }, "quantity_counted"},
		{"non-numeric quantity", func(f *Fields) { f.Quantity = "lots" }, "quantity_counted"},
		{"negative reorder level", func(f *Fields) { f.ReorderLevel = "-5" }, "reorder_level"},
		{"missing date", func(f *Fields) { f.LastCount = "" }, "last_count_date"},
		{"malformed date", func(f *Fields) { f.LastCount = "01/02/2024" }, "last_count_date"},
		{"no category at all", func(f *Fields) { f.Category = ""; f.CustomCategory = "" }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, errs := Validate(input)
			assert.Contains(t, errs, tt.field)
			assert.Len(t, errs, 1, "only the mutated field should fail")
		})
	}
}

func TestBlankCountsDefaultToZero(t *testing.T) {
	input := validInput()
	input.Quantity = ""
	input.ReorderLevel = ""

	fields, errs := Validate(input)
	require.Empty(t, errs)
	assert.Equal(t, 0, fields.Quantity)
	assert.Equal(t, 0, fields.ReorderLevel)
}

func TestCustomCategoryTakesPrecedence(t *testing.T) {
	input := validInput()
	input.Category = model.CategoryEquipment
	input.CustomCategory = "Fasteners"

	fields, errs := Validate(input)
	require.Empty(t, errs)
	assert.Equal(t, "Fasteners", fields.Category)
}

func TestOptionalFieldsMayBeBlank(t *testing.T) {
	input := validInput()
	input.SKU = ""
	input.Unit = ""
	input.Location = ""
	input.Supplier = ""
	input.Notes = ""
	input.ImageURL = ""

	_, errs := Validate(input)
	assert.Empty(t, errs)
}
