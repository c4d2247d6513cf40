// Package kv defines the keyed-slot persistence contract shared by the
// inventory, settings and session stores. Each slot holds one opaque string,
// the way browser local storage does.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the slot has never been written.
	ErrNotFound = errors.New("kv: key not found")
	// ErrQuotaExceeded is returned by Set when the backend refuses the write
	// for lack of space. The previous value of the slot is left untouched.
	ErrQuotaExceeded = errors.New("kv: storage quota exceeded")
)

// Store is a persistent string-keyed slot store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}
