package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))
}

func TestValidateConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	assert.Error(t, ValidateConfig(cfg))

	cfg = DefaultConfig()
	cfg.ThumbnailWidth = 0
	assert.Error(t, ValidateConfig(cfg))

	cfg = DefaultConfig()
	cfg.MaxFullImages = -1
	assert.Error(t, ValidateConfig(cfg))

	cfg = DefaultConfig()
	cfg.CacheIdleTTLMinutes = 0
	assert.Error(t, ValidateConfig(cfg))

	cfg = DefaultConfig()
	cfg.SlideshowIntervalSeconds = 0
	assert.Error(t, ValidateConfig(cfg))
}
