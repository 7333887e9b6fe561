package config

import (
	"testing"
	"time"

	"github.com/forgegate/forgegate/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The example config the repo ships must bring up a working engine: every
// value in it has to survive validation and logger construction.
func TestLoadShippedConfig(t *testing.T) {
	cfg, err := LoadConfigFile("../../../conf.d/config.toml")
	require.NoError(t, err)

	_, err = log.New(&cfg.Log)
	require.NoError(t, err, "logger must build from the shipped log section")

	assert.Equal(t, "0.0.0.0:8080", cfg.Http.Addr())
	assert.Equal(t, "acme/streams-infra", cfg.Pipeline.PipelineId())
	assert.Equal(t, time.Hour, cfg.Gate.TimeoutDuration())
	assert.Equal(t, "minio", cfg.Storage.Provider)
}
