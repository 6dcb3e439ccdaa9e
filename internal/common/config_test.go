package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, Validate(config))

	assert.Equal(t, "badger", config.Storage.Mode)
	assert.Equal(t, 500, config.Pipeline.ChunkSize)
	assert.Equal(t, 100, config.Pipeline.ChunkOverlap)
	assert.Equal(t, 768, config.Pipeline.Dimension)
	assert.Equal(t, 5, config.Pipeline.TopK)
	assert.Equal(t, 100, config.Pipeline.UpsertBatch)
	assert.False(t, config.IsProduction())
}

func TestLoadFromFiles_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "respondeo.toml")
	content := `
[server]
port = 9090

[pipeline]
chunk_size = 800
chunk_overlap = 200

[storage]
mode = "qdrant"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 800, config.Pipeline.ChunkSize)
	assert.Equal(t, 200, config.Pipeline.ChunkOverlap)
	assert.Equal(t, "qdrant", config.Storage.Mode)
	// Untouched values keep defaults
	assert.Equal(t, 768, config.Pipeline.Dimension)
}

func TestLoadFromFiles_LaterFilesWin(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	require.NoError(t, os.WriteFile(first, []byte("[server]\nport = 7000\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("[server]\nport = 7001\n"), 0644))

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 7001, config.Server.Port)
}

func TestLoadFromFiles_MissingFileFails(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate_RejectsOverlapNotBelowChunkSize(t *testing.T) {
	config := DefaultConfig()
	config.Pipeline.ChunkOverlap = config.Pipeline.ChunkSize
	assert.Error(t, Validate(config))

	config.Pipeline.ChunkOverlap = config.Pipeline.ChunkSize + 1
	assert.Error(t, Validate(config))
}

func TestValidate_RejectsUnknownStorageMode(t *testing.T) {
	config := DefaultConfig()
	config.Storage.Mode = "postgres"
	assert.Error(t, Validate(config))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RESPONDEO_PORT", "9999")
	t.Setenv("RESPONDEO_STORAGE_MODE", "qdrant")
	t.Setenv("GEMINI_API_KEY", "test-key")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, "qdrant", config.Storage.Mode)
	assert.Equal(t, "test-key", config.Gemini.APIKey)
}
