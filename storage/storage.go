// Package storage picks the kv backend for the configured mode and names
// the slots the application uses.
package storage

import (
	"fmt"

	"github.com/kasuganosora/memorybox/config"
	"github.com/kasuganosora/memorybox/kv"
	"github.com/kasuganosora/memorybox/kv/local"
	"github.com/kasuganosora/memorybox/kv/rediskv"
	"github.com/kasuganosora/memorybox/kv/sqlkv"
	"gorm.io/gorm"
)

const (
	ModeMemory = "memory"
	ModeRedis  = "redis"
	ModeSQL    = "sql"
)

// Keys are the slot names for one application instance.
type Keys struct {
	Items       string
	Settings    string
	Intro       string
	SearchQuery string
}

// NewKeys derives slot names from prefix.
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = "memorybox_guardian"
	}
	return Keys{
		Items:       prefix + "_items",
		Settings:    prefix + "_settings",
		Intro:       prefix + "_intro",
		SearchQuery: prefix + "_search_query",
	}
}

// Open returns the kv.Store for cfg.Mode. db is only used in sql mode and
// must already be migrated.
func Open(cfg config.StorageConfig, rc config.RedisConfig, db *gorm.DB) (kv.Store, error) {
	switch cfg.Mode {
	case ModeMemory:
		return local.NewStore(local.Config{QuotaBytes: cfg.QuotaBytes}), nil
	case ModeRedis:
		if rc.Addr == "" {
			return nil, fmt.Errorf("storage: mode %q needs redis.addr", cfg.Mode)
		}
		return rediskv.NewStore(rediskv.Config{
			Addr:          rc.Addr,
			Password:      rc.Password,
			DB:            rc.DB,
			MaxValueBytes: cfg.QuotaBytes,
		})
	case ModeSQL:
		if db == nil {
			return nil, fmt.Errorf("storage: mode %q needs a database", cfg.Mode)
		}
		return sqlkv.NewStore(db, sqlkv.Config{QuotaBytes: cfg.QuotaBytes}), nil
	default:
		return nil, fmt.Errorf("storage: unknown mode %q", cfg.Mode)
	}
}
