package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, VerifyAgainstEmbeddedSchema(Default()))
	})

	t.Run("missing listen", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Listen = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.listen is required")
	})

	t.Run("sqlite without dsn", func(t *testing.T) {
		cfg := Default()
		cfg.Cache.Backend = "sqlite"
		cfg.Cache.DSN = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.dsn is required")
	})

	t.Run("no feeds", func(t *testing.T) {
		cfg := Default()
		cfg.Feeds = nil
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feeds is required")
	})
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"feeds"`)
	assert.Contains(t, string(data), `"cleanup_interval"`)
	assert.Contains(t, string(data), "Cache backend")
}
