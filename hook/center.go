// Package hook lets other components observe or veto inventory mutations
// without the inventory service knowing about them.
package hook

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/kasuganosora/memorybox/model"
)

// ErrInterrupt signals that a handler wants to stop further processing.
// Returned from a Before* event it vetoes the mutation.
var ErrInterrupt = errors.New("hook interrupted")

const (
	BeforeItemCreate = "before_item_create"
	AfterItemCreate  = "after_item_create"
	BeforeItemUpdate = "before_item_update"
	AfterItemUpdate  = "after_item_update"
	AfterItemDelete  = "after_item_delete"
	AfterImport      = "after_import"
)

// Event is the payload handed to every handler. Before* handlers may edit
// Item in place; the edited value is what gets stored.
type Event struct {
	Name  string
	Item  model.InventoryItem
	Items []model.InventoryItem // AfterImport only
}

// Fn is a hook handler.
type Fn func(ctx context.Context, ev *Event) error

type entry struct {
	priority int
	name     string
	fn       Fn
}

// Center manages hook registrations. The zero value is not usable; call
// NewCenter. A nil *Center is valid and triggers nothing.
type Center struct {
	mu    sync.RWMutex
	hooks map[string][]*entry
}

func NewCenter() *Center {
	return &Center{hooks: make(map[string][]*entry)}
}

// Register adds fn for event. Lower priority runs first; equal priorities
// keep registration order. name is used for Unregister.
func (c *Center) Register(event string, priority int, name string, fn Fn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := append(c.hooks[event], &entry{priority: priority, name: name, fn: fn})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})
	c.hooks[event] = entries
}

// Unregister removes every handler registered under name, on all events.
func (c *Center) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for event, entries := range c.hooks {
		kept := entries[:0]
		for _, e := range entries {
			if e.name != name {
				kept = append(kept, e)
			}
		}
		c.hooks[event] = kept
	}
}

// Trigger runs the handlers for ev.Name in priority order. It stops at the
// first handler returning ErrInterrupt and returns that error; any other
// handler error is collected and returned joined after all handlers ran.
func (c *Center) Trigger(ctx context.Context, ev *Event) error {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	entries := make([]*entry, len(c.hooks[ev.Name]))
	copy(entries, c.hooks[ev.Name])
	c.mu.RUnlock()

	var errs []error
	for _, e := range entries {
		err := e.fn(ctx, ev)
		if errors.Is(err, ErrInterrupt) {
			return err
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
