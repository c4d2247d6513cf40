package sqlkv

import (
	"context"
	"errors"

	"github.com/kasuganosora/memorybox/kv"
	"github.com/kasuganosora/memorybox/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Config holds SQLStore settings.
type Config struct {
	// QuotaBytes caps the summed byte length of all stored values. Zero
	// means unlimited.
	QuotaBytes int64
}

// SQLStore implements kv.Store on the slots table (see model.Slot).
// The table must already be migrated.
type SQLStore struct {
	db    *gorm.DB
	quota int64
}

// NewStore wraps db.
func NewStore(db *gorm.DB, cfg Config) *SQLStore {
	return &SQLStore{db: db, quota: cfg.QuotaBytes}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var slot model.Slot
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return slot.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.quota > 0 {
			var used int64
			err := tx.Model(&model.Slot{}).
				Where("slot_key <> ?", key).
				Select("COALESCE(SUM(size), 0)").
				Scan(&used).Error
			if err != nil {
				return err
			}
			if used+int64(len(value)) > s.quota {
				return kv.ErrQuotaExceeded
			}
		}
		// size holds the byte count; SQL LENGTH differs between dialects.
		slot := model.Slot{Key: key, Value: value, Size: int64(len(value))}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "size", "updated_at"}),
		}).Create(&slot).Error
	})
}

func (s *SQLStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("slot_key IN ?", keys).Delete(&model.Slot{}).Error
}

func (s *SQLStore) Exists(ctx context.Context, key string) (bool, error) {
	var slots []model.Slot
	err := s.db.WithContext(ctx).Select("slot_key").Where("slot_key = ?", key).Limit(1).Find(&slots).Error
	return len(slots) > 0, err
}
