package settings_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kasuganosora/memorybox/model"
	"github.com/kasuganosora/memorybox/settings"
	"github.com/kasuganosora/memorybox/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "memorybox_guardian_settings"

func TestStore_DefaultsWhenNeverSaved(t *testing.T) {
	s := settings.NewStore(testutil.SetupTestSlots(t), key, nil)
	got := s.Get(context.Background())
	assert.True(t, got.PushAlerts)
	assert.True(t, got.SoundEffects)
	assert.Equal(t, model.SensitivityMedium, got.Sensitivity)
}

func TestStore_SetThenGet(t *testing.T) {
	ctx := context.Background()
	s := settings.NewStore(testutil.SetupTestSlots(t), key, nil)

	st := model.DefaultSettings()
	st.Sensitivity = model.SensitivityHigh
	require.NoError(t, s.Set(ctx, st))

	got := s.Get(ctx)
	assert.Equal(t, model.SensitivityHigh, got.Sensitivity)
	assert.True(t, got.PushAlerts)
	assert.True(t, got.SoundEffects)
}

func TestStore_PartialPayloadMergesDefaults(t *testing.T) {
	ctx := context.Background()
	slots := testutil.SetupTestSlots(t)
	require.NoError(t, slots.Set(ctx, key, `{"soundEffects":false}`))

	got := settings.NewStore(slots, key, nil).Get(ctx)
	assert.False(t, got.SoundEffects)
	assert.True(t, got.PushAlerts)
	assert.Equal(t, model.SensitivityMedium, got.Sensitivity)
}

func TestStore_UnknownKeysPreserved(t *testing.T) {
	ctx := context.Background()
	slots := testutil.SetupTestSlots(t)
	require.NoError(t, slots.Set(ctx, key, `{"pushAlerts":false,"theme":"dark"}`))
	s := settings.NewStore(slots, key, nil)

	st := s.Get(ctx)
	st.Sensitivity = model.SensitivityLow
	require.NoError(t, s.Set(ctx, st))

	raw, err := slots.Get(ctx, key)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	assert.Equal(t, "dark", m["theme"])
	assert.Equal(t, false, m["pushAlerts"])
	assert.Equal(t, "Low", m["sensitivity"])
}

func TestStore_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	slots := testutil.SetupTestSlots(t)
	require.NoError(t, slots.Set(ctx, key, `{{{`))
	got := settings.NewStore(slots, key, testutil.SetupTestLogger(t)).Get(ctx)
	assert.Equal(t, model.DefaultSettings(), got)

	require.NoError(t, slots.Set(ctx, key, `{"sensitivity":"Extreme"}`))
	got = settings.NewStore(slots, key, nil).Get(ctx)
	assert.Equal(t, model.SensitivityMedium, got.Sensitivity)
}

func TestStore_SetRejectsUnknownSensitivity(t *testing.T) {
	s := settings.NewStore(testutil.SetupTestSlots(t), key, nil)
	st := model.DefaultSettings()
	st.Sensitivity = "Extreme"
	assert.ErrorIs(t, s.Set(context.Background(), st), settings.ErrInvalidSettings)
}

func TestStore_MalformedKeyKeepsTheRest(t *testing.T) {
	ctx := context.Background()
	slots := testutil.SetupTestSlots(t)
	require.NoError(t, slots.Set(ctx, key, `{"pushAlerts":"yes","soundEffects":false,"sensitivity":"High"}`))

	got := settings.NewStore(slots, key, testutil.SetupTestLogger(t)).Get(ctx)
	assert.True(t, got.PushAlerts, "malformed key falls back to its default")
	assert.False(t, got.SoundEffects)
	assert.Equal(t, model.SensitivityHigh, got.Sensitivity)
}
