package model_test

import (
	"testing"

	"github.com/kasuganosora/memorybox/model"
	"github.com/kasuganosora/memorybox/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAutoMigrate_InsertAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)

	slot := &model.Slot{Key: "memorybox_guardian_items", Value: "[]"}
	require.NoError(t, db.Create(slot).Error)
	var found model.Slot
	require.NoError(t, db.First(&found, "slot_key = ?", slot.Key).Error)
	assert.Equal(t, "[]", found.Value)
	assert.False(t, found.UpdatedAt.IsZero())

	row := &model.ActivityLog{
		Action:   model.ActionItemCreate,
		ItemID:   "a",
		ItemName: "Keys",
		Snapshot: datatypes.JSON(`{"id":"a"}`),
	}
	require.NoError(t, db.Create(row).Error)
	assert.Greater(t, row.ID, int64(0))
	assert.False(t, row.CreatedAt.IsZero())
}

func TestAutoMigrate_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	require.NoError(t, model.AutoMigrate(db))
}
