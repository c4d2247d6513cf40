package model

import "time"

// Slot is one keyed value of the SQL-backed key-value store.
type Slot struct {
	Key       string    `gorm:"column:slot_key;primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Size      int64     `gorm:"not null;default:0" json:"size"` // len(Value) in bytes
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
