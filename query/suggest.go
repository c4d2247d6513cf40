package query

import (
	"errors"

	"github.com/kasuganosora/memorybox/model"
)

// Field names a string field of model.InventoryItem that can be suggested.
type Field string

const (
	FieldName     Field = "name"
	FieldLocation Field = "location"
	FieldCategory Field = "category"
	FieldNotes    Field = "notes"
)

// ErrUnknownField is returned by ParseField.
var ErrUnknownField = errors.New("query: unknown suggestion field")

// ParseField accepts the JSON field names above.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldName, FieldLocation, FieldCategory, FieldNotes:
		return f, nil
	}
	return "", ErrUnknownField
}

var defaultNames = []string{
	"Keys", "Wallet", "Phone", "Backpack", "Laptop",
	"Glasses", "Passport", "Headphones", "Water Bottle",
}

// DefaultNames is the built-in list offered before any item exists.
func DefaultNames() []string {
	out := make([]string, len(defaultNames))
	copy(out, defaultNames)
	return out
}

func (f Field) value(it model.InventoryItem) string {
	switch f {
	case FieldName:
		return it.Name
	case FieldLocation:
		return it.Location
	case FieldCategory:
		return string(it.Category)
	case FieldNotes:
		return it.Notes
	}
	return ""
}

// Suggest returns the distinct non-empty values of field in first-seen
// order. When there are none and field is name, DefaultNames is returned
// instead.
func Suggest(items []model.InventoryItem, field Field) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, it := range items {
		v := field.value(it)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 && field == FieldName {
		return DefaultNames()
	}
	return out
}
