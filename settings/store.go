// Package settings persists the single preferences record.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kasuganosora/memorybox/kv"
	"github.com/kasuganosora/memorybox/model"
	"go.uber.org/zap"
)

// ErrInvalidSettings is returned by Set for an unknown sensitivity level.
var ErrInvalidSettings = errors.New("settings: invalid settings")

// Store reads and writes model.Settings in one kv slot.
type Store struct {
	slots  kv.Store
	key    string
	logger *zap.Logger
}

// NewStore creates a Store over the slot named key.
func NewStore(slots kv.Store, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{slots: slots, key: key, logger: logger}
}

// Get returns the stored settings merged over model.DefaultSettings. It
// falls back to the defaults when nothing was saved, when the payload is
// unreadable, or when the backend fails.
func (s *Store) Get(ctx context.Context) model.Settings {
	raw, err := s.slots.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return model.DefaultSettings()
	}
	if err != nil {
		s.logger.Error("read settings", zap.Error(err))
		return model.DefaultSettings()
	}
	st, skipped, err := model.DecodeSettings([]byte(raw))
	if err != nil {
		s.logger.Warn("corrupt settings slot, using defaults",
			zap.String("key", s.key), zap.Error(err))
		return model.DefaultSettings()
	}
	if len(skipped) > 0 {
		s.logger.Warn("ignoring malformed settings keys",
			zap.String("key", s.key), zap.Strings("fields", skipped))
	}
	if !st.Sensitivity.Valid() {
		st.Sensitivity = model.DefaultSettings().Sensitivity
	}
	return st
}

// Set overwrites the stored record with st.
func (s *Store) Set(ctx context.Context, st model.Settings) error {
	if !st.Sensitivity.Valid() {
		return fmt.Errorf("%w: sensitivity %q", ErrInvalidSettings, st.Sensitivity)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := s.slots.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("settings: write slot: %w", err)
	}
	return nil
}
