package storage_test

import (
	"testing"

	"github.com/kasuganosora/memorybox/config"
	"github.com/kasuganosora/memorybox/kv/local"
	"github.com/kasuganosora/memorybox/kv/sqlkv"
	"github.com/kasuganosora/memorybox/storage"
	"github.com/kasuganosora/memorybox/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeys(t *testing.T) {
	k := storage.NewKeys("")
	assert.Equal(t, "memorybox_guardian_items", k.Items)
	assert.Equal(t, "memorybox_guardian_settings", k.Settings)
	assert.Equal(t, "memorybox_guardian_intro", k.Intro)
	assert.Equal(t, "memorybox_guardian_search_query", k.SearchQuery)

	assert.Equal(t, "box2_items", storage.NewKeys("box2").Items)
}

func TestOpen_Modes(t *testing.T) {
	s, err := storage.Open(config.StorageConfig{Mode: storage.ModeMemory}, config.RedisConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &local.LocalStore{}, s)

	s, err = storage.Open(config.StorageConfig{Mode: storage.ModeSQL}, config.RedisConfig{}, testutil.SetupTestDB(t))
	require.NoError(t, err)
	assert.IsType(t, &sqlkv.SQLStore{}, s)

	_, err = storage.Open(config.StorageConfig{Mode: storage.ModeSQL}, config.RedisConfig{}, nil)
	assert.Error(t, err)

	_, err = storage.Open(config.StorageConfig{Mode: storage.ModeRedis}, config.RedisConfig{}, nil)
	assert.Error(t, err)

	_, err = storage.Open(config.StorageConfig{Mode: "floppy"}, config.RedisConfig{}, nil)
	assert.Error(t, err)
}
