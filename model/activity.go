package model

import (
	"time"

	"gorm.io/datatypes"
)

// Activity actions recorded by the audit log.
const (
	ActionItemCreate = "item_create"
	ActionItemUpdate = "item_update"
	ActionItemDelete = "item_delete"
	ActionImport     = "import"
)

// ActivityLog records one inventory mutation.
type ActivityLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TraceID   string         `gorm:"index:idx_activity_trace;size:36" json:"trace_id"`
	Action    string         `gorm:"size:32;not null" json:"action"`
	ItemID    string         `gorm:"index:idx_activity_item;size:64" json:"item_id"`
	ItemName  string         `gorm:"size:128" json:"item_name"`
	Snapshot  datatypes.JSON `json:"snapshot"` // item without its image payload
	CreatedAt time.Time      `gorm:"index:idx_activity_created;autoCreateTime:milli" json:"created_at"`
}
