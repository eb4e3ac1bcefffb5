package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, 30, cfg.ShutdownTimeout)
	assert.False(t, cfg.UseDynamo)
	assert.Equal(t, "ap-south-1", cfg.AWSRegion)
	assert.Equal(t, "hrdesk-companies-dev", cfg.Tables.Companies)
	assert.Equal(t, "hrdesk-counters-dev", cfg.Tables.Counters)
}

func TestTableSuffixInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "hrdesk-companies", cfg.Tables.Companies)
	assert.True(t, cfg.IsProduction())
}

func TestBackendFlag(t *testing.T) {
	t.Setenv("USE_DYNAMODB", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.UseDynamo)
}

func TestShutdownTimeoutOverride(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.ShutdownTimeout)
}

func TestShutdownTimeoutIgnoresGarbage(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.ShutdownTimeout)
}

func TestTableOverride(t *testing.T) {
	t.Setenv("LEAVES_TABLE", "custom-leaves")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "custom-leaves", cfg.Tables.Leaves)
}
