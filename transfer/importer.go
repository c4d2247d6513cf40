package transfer

import (
	"context"
	"time"

	"github.com/kasuganosora/memorybox/hook"
	"github.com/kasuganosora/memorybox/inventory"
	"github.com/kasuganosora/memorybox/model"
	"go.uber.org/zap"
)

// Importer restores and dumps the whole collection of an inventory.Store.
type Importer struct {
	store  inventory.Store
	hooks  *hook.Center
	logger *zap.Logger
}

// NewImporter creates an Importer. hooks may be nil.
func NewImporter(store inventory.Store, hooks *hook.Center, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: store, hooks: hooks, logger: logger}
}

// Restore validates payload with Import and then replaces the stored
// collection in one write. Nothing is changed when either step fails.
func (im *Importer) Restore(ctx context.Context, payload []byte) (int, error) {
	items, err := Import(payload)
	if err != nil {
		return 0, err
	}
	if err := im.store.ReplaceAll(ctx, items); err != nil {
		return 0, err
	}
	im.logger.Info("inventory restored from backup", zap.Int("items", len(items)))
	if err := im.hooks.Trigger(ctx, &hook.Event{Name: hook.AfterImport, Items: items}); err != nil {
		im.logger.Warn("hook failed", zap.String("event", hook.AfterImport), zap.Error(err))
	}
	return len(items), nil
}

// Dump encodes the current collection.
func (im *Importer) Dump(ctx context.Context, f Format, loc *time.Location) ([]byte, []model.InventoryItem, error) {
	items, err := im.store.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	data, err := Export(items, f, loc)
	return data, items, err
}
