package inventory

import "errors"

var (
	// ErrItemNotFound is returned by Get and Update for an unknown id.
	// Delete never returns it.
	ErrItemNotFound = errors.New("inventory: item not found")
	// ErrDuplicateID is returned by Create when the id is already stored.
	ErrDuplicateID = errors.New("inventory: duplicate item id")
	// ErrInvalidItem is returned when a draft lacks a name or an image, or
	// names an unknown category.
	ErrInvalidItem = errors.New("inventory: invalid item")
	// ErrVetoed is returned when a before-hook refused the mutation.
	ErrVetoed = errors.New("inventory: mutation vetoed")
)
