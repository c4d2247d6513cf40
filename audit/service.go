package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/kasuganosora/memorybox/hook"
	mw "github.com/kasuganosora/memorybox/middleware"
	"github.com/kasuganosora/memorybox/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	hookName     = "audit"
	hookPriority = 1000 // after every other observer
	maxBatch     = 100
)

// Config tunes the background writer.
type Config struct {
	Buffer        int
	FlushInterval time.Duration
}

// Service records inventory mutations asynchronously in batches.
type Service struct {
	db     *gorm.DB
	ch     chan *model.ActivityLog
	stopCh chan struct{}
	wg     sync.WaitGroup
	logger *zap.Logger
	flush  time.Duration
}

// New creates a Service and starts its background worker.
func New(db *gorm.DB, cfg Config, logger *zap.Logger) *Service {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 256
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &Service{
		db:     db,
		ch:     make(chan *model.ActivityLog, cfg.Buffer),
		stopCh: make(chan struct{}),
		logger: logger,
		flush:  cfg.FlushInterval,
	}
	svc.wg.Add(1)
	go svc.worker()
	return svc
}

// Attach subscribes the service to every after-mutation hook.
func (svc *Service) Attach(hc *hook.Center) {
	actions := map[string]string{
		hook.AfterItemCreate: model.ActionItemCreate,
		hook.AfterItemUpdate: model.ActionItemUpdate,
		hook.AfterItemDelete: model.ActionItemDelete,
	}
	for event, action := range actions {
		action := action
		hc.Register(event, hookPriority, hookName, func(ctx context.Context, ev *hook.Event) error {
			svc.Record(ctx, action, ev.Item)
			return nil
		})
	}
	hc.Register(hook.AfterImport, hookPriority, hookName, func(ctx context.Context, ev *hook.Event) error {
		svc.enqueue(&model.ActivityLog{
			TraceID:  mw.TraceIDFromContext(ctx),
			Action:   model.ActionImport,
			Snapshot: datatypes.JSON(mustJSON(map[string]int{"items": len(ev.Items)})),
		})
		return nil
	})
}

// Record enqueues one mutation of item. The image payload is not kept.
func (svc *Service) Record(ctx context.Context, action string, item model.InventoryItem) {
	item.Image = ""
	svc.enqueue(&model.ActivityLog{
		TraceID:  mw.TraceIDFromContext(ctx),
		Action:   action,
		ItemID:   item.ID,
		ItemName: item.Name,
		Snapshot: datatypes.JSON(mustJSON(item)),
	})
}

func (svc *Service) enqueue(rec *model.ActivityLog) {
	select {
	case svc.ch <- rec:
	default:
		svc.logger.Warn("audit channel full, dropping entry",
			zap.String("action", rec.Action), zap.String("item_id", rec.ItemID))
	}
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return b
}

// Stop flushes remaining entries and shuts down the worker.
// It blocks until the worker goroutine has finished.
func (svc *Service) Stop() {
	select {
	case <-svc.stopCh:
	default:
		close(svc.stopCh)
	}
	svc.wg.Wait()
}

func (svc *Service) worker() {
	defer svc.wg.Done()
	ticker := time.NewTicker(svc.flush)
	defer ticker.Stop()

	batch := make([]*model.ActivityLog, 0, maxBatch)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := svc.db.Create(&batch).Error; err != nil {
			svc.logger.Error("audit batch write failed", zap.Error(err), zap.Int("entries", len(batch)))
		}
		batch = batch[:0]
	}

	for {
		select {
		case rec := <-svc.ch:
			batch = append(batch, rec)
			if len(batch) >= maxBatch {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-svc.stopCh:
			for {
				select {
				case rec := <-svc.ch:
					batch = append(batch, rec)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Recent returns the newest activity rows, newest first.
func (svc *Service) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var rows []model.ActivityLog
	err := svc.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
