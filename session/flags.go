// Package session holds the small persisted flags that gate onboarding and
// remember the last search.
package session

import (
	"context"
	"errors"

	"github.com/kasuganosora/memorybox/kv"
)

const visitedMarker = "true"

// Flags stores the first-run marker and the last search query.
type Flags struct {
	slots    kv.Store
	introKey string
	queryKey string
}

// NewFlags creates Flags over the two named slots.
func NewFlags(slots kv.Store, introKey, queryKey string) *Flags {
	return &Flags{slots: slots, introKey: introKey, queryKey: queryKey}
}

// IsFirstTime reports whether onboarding has never completed. Any non-empty
// marker counts as visited.
func (f *Flags) IsFirstTime(ctx context.Context) (bool, error) {
	v, err := f.slots.Get(ctx, f.introKey)
	if errors.Is(err, kv.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return v == "", nil
}

// MarkVisited sets the first-run marker. Nothing clears it.
func (f *Flags) MarkVisited(ctx context.Context) error {
	return f.slots.Set(ctx, f.introKey, visitedMarker)
}

// LastQuery returns the most recent search input, "" when none.
func (f *Flags) LastQuery(ctx context.Context) (string, error) {
	v, err := f.slots.Get(ctx, f.queryKey)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// SetLastQuery overwrites the remembered search input.
func (f *Flags) SetLastQuery(ctx context.Context, q string) error {
	return f.slots.Set(ctx, f.queryKey, q)
}
