package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/kasuganosora/memorybox/audit"
	"github.com/kasuganosora/memorybox/hook"
	"github.com/kasuganosora/memorybox/inventory"
	mw "github.com/kasuganosora/memorybox/middleware"
	"github.com/kasuganosora/memorybox/model"
	"github.com/kasuganosora/memorybox/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestService_StopFlushes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := audit.New(db, audit.Config{FlushInterval: time.Hour}, testutil.SetupTestLogger(t))

	ctx := mw.WithTraceID(context.Background(), "trace-1")
	item := testutil.NewItem("a", "Keys", model.CategoryHome)
	svc.Record(ctx, model.ActionItemCreate, item)
	svc.Record(ctx, model.ActionItemDelete, item)
	svc.Stop()
	svc.Stop() // idempotent

	var rows []model.ActivityLog
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "trace-1", rows[0].TraceID)
	assert.Equal(t, model.ActionItemCreate, rows[0].Action)
	assert.Equal(t, "a", rows[0].ItemID)
	assert.Equal(t, "Keys", rows[0].ItemName)

	var snap model.InventoryItem
	require.NoError(t, json.Unmarshal(rows[0].Snapshot, &snap))
	assert.Equal(t, "Keys", snap.Name)
	assert.Empty(t, snap.Image, "image payload is not audited")
}

func TestService_AttachRecordsMutations(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := audit.New(db, audit.Config{FlushInterval: time.Hour}, nil)

	hooks := hook.NewCenter()
	svc.Attach(hooks)
	store := inventory.NewSlotStore(testutil.SetupTestSlots(t), "items", nil)
	inv := inventory.NewService(store, hooks, nil)

	item, err := inv.Add(ctx, inventory.Draft{Name: "Keys", Image: testutil.TinyImage})
	require.NoError(t, err)
	_, err = inv.Edit(ctx, item.ID, inventory.Draft{Name: "Car keys", Image: testutil.TinyImage})
	require.NoError(t, err)
	require.NoError(t, inv.Remove(ctx, item.ID))
	require.NoError(t, hooks.Trigger(ctx, &hook.Event{Name: hook.AfterImport, Items: []model.InventoryItem{item}}))
	svc.Stop()

	rows, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	actions := make([]string, len(rows))
	for i, r := range rows {
		actions[i] = r.Action
	}
	assert.Equal(t, []string{model.ActionImport, model.ActionItemDelete, model.ActionItemUpdate, model.ActionItemCreate}, actions)
}

func TestService_FlushOnTicker(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := audit.New(db, audit.Config{FlushInterval: 20 * time.Millisecond}, nil)
	defer svc.Stop()

	svc.Record(context.Background(), model.ActionItemUpdate, testutil.NewItem("a", "A", model.CategoryMisc))
	assert.Eventually(t, func() bool {
		var rows []model.ActivityLog
		_ = db.Find(&rows).Error
		return len(rows) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

// Record never blocks the caller, even when the worker cannot keep up.
func TestService_DropsWhenFull(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := audit.New(db, audit.Config{Buffer: 1, FlushInterval: time.Hour}, nil)
	for i := 0; i < 500; i++ {
		svc.Record(context.Background(), model.ActionItemUpdate, model.InventoryItem{ID: "x"})
	}
	svc.Stop()

	var rows []model.ActivityLog
	require.NoError(t, db.Find(&rows).Error)
	assert.LessOrEqual(t, len(rows), 500)
	assert.NotEmpty(t, rows)
}
