package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDomainConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultDomainConfig().Validate())
	require.NoError(t, DevelopmentDomainConfig().Validate())
}

func TestDomainConfig_Validate(t *testing.T) {
	t.Run("rejects inverted bands", func(t *testing.T) {
		cfg := DefaultDomainConfig()
		cfg.LowBandUpperBound = 0.7
		cfg.MidBandUpperBound = 0.3
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects a pool smaller than the draws", func(t *testing.T) {
		cfg := DefaultDomainConfig()
		cfg.MinSamplePoolSize = 5
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadDomainConfig(t *testing.T) {
	dev := LoadDomainConfig("development")
	assert.True(t, dev.AllowSelfLinks)

	prod := LoadDomainConfig("production")
	assert.False(t, prod.AllowSelfLinks)
	assert.Equal(t, "present", prod.PresentCollectionName)
}
