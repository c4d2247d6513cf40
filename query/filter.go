// Package query derives read-only views over an item snapshot. Every
// function is pure and never reorders its input.
package query

import (
	"strings"

	"github.com/kasuganosora/memorybox/model"
)

// FilterByCategory keeps items of category c. CategoryAll keeps everything.
func FilterByCategory(items []model.InventoryItem, c model.Category) []model.InventoryItem {
	if c == model.CategoryAll {
		return clone(items)
	}
	out := make([]model.InventoryItem, 0, len(items))
	for _, it := range items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}

// Search returns items whose name, category or notes contain q, ignoring
// case. An empty q matches nothing: no query typed means no results shown.
func Search(items []model.InventoryItem, q string) []model.InventoryItem {
	out := make([]model.InventoryItem, 0)
	if q == "" {
		return out
	}
	needle := strings.ToLower(q)
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(string(it.Category)), needle) ||
			strings.Contains(strings.ToLower(it.Notes), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Trackable keeps items with an associated (simulated) tracker.
func Trackable(items []model.InventoryItem) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(items))
	for _, it := range items {
		if it.Trackable() {
			out = append(out, it)
		}
	}
	return out
}

// FindByID returns the first item with id.
func FindByID(items []model.InventoryItem, id string) (model.InventoryItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return model.InventoryItem{}, false
}

func clone(items []model.InventoryItem) []model.InventoryItem {
	out := make([]model.InventoryItem, len(items))
	copy(out, items)
	return out
}
