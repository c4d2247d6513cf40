package main

import (
	"fmt"
	"io"

	"github.com/kasuganosora/memorybox/audit"
	"github.com/kasuganosora/memorybox/config"
	dbadapter "github.com/kasuganosora/memorybox/db"
	"github.com/kasuganosora/memorybox/hook"
	"github.com/kasuganosora/memorybox/inventory"
	"github.com/kasuganosora/memorybox/kv"
	"github.com/kasuganosora/memorybox/model"
	"github.com/kasuganosora/memorybox/session"
	"github.com/kasuganosora/memorybox/settings"
	"github.com/kasuganosora/memorybox/storage"
	"github.com/kasuganosora/memorybox/transfer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired domain stack shared by every subcommand.
type app struct {
	db       *gorm.DB
	slots    kv.Store
	keys     storage.Keys
	hooks    *hook.Center
	store    *inventory.SlotStore
	items    *inventory.Service
	settings *settings.Store
	flags    *session.Flags
	importer *transfer.Importer
	audit    *audit.Service
	logger   *zap.Logger
}

// openApp opens the database, the slot backend and the stores on top of it.
// The database is always opened because the audit trail lives there even
// when items are kept in memory or redis.
func openApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	logger.Info("DB initialized", zap.String("mode", cfg.Database.Mode))

	slots, err := storage.Open(cfg.Storage, cfg.Redis, db)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Info("storage initialized", zap.String("mode", cfg.Storage.Mode))

	a := &app{
		db:     db,
		slots:  slots,
		keys:   storage.NewKeys(cfg.Storage.KeyPrefix),
		hooks:  hook.NewCenter(),
		logger: logger,
	}
	if cfg.Audit.Enabled {
		a.audit = audit.New(db, audit.Config{
			Buffer:        cfg.Audit.Buffer,
			FlushInterval: cfg.Audit.FlushInterval,
		}, logger)
		a.audit.Attach(a.hooks)
	}
	a.store = inventory.NewSlotStore(slots, a.keys.Items, logger)
	a.items = inventory.NewService(a.store, a.hooks, logger,
		inventory.WithMaxImageWidth(cfg.Image.MaxWidth))
	a.settings = settings.NewStore(slots, a.keys.Settings, logger)
	a.flags = session.NewFlags(slots, a.keys.Intro, a.keys.SearchQuery)
	a.importer = transfer.NewImporter(a.store, a.hooks, logger)
	return a, nil
}

// Close drains the audit writer, then closes the slot backend when it holds
// a connection pool, then the database.
func (a *app) Close() {
	if a.audit != nil {
		a.audit.Stop()
	}
	if c, ok := a.slots.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("close storage", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
