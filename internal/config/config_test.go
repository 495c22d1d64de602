package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDefaults(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "corentings", cfg.Engine)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ArchiveNone, cfg.Archive)
	assert.Equal(t, ":8080", cfg.HttpAddr)
	assert.False(t, cfg.LogDevelopment)
	assert.Equal(t, "1MB", cfg.MaxImportSize)
}

func TestSetupFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sanplay.env")
	content := "ENGINE=notnil\nARCHIVE=Memory\nLOG_LEVEL=warn\nREDIS_URL=cache:6379\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SANPLAY_LOG_LEVEL", "debug")
	t.Setenv("SANPLAY_LOG_DEVELOPMENT", "true")

	cfg, err := Setup(path)
	require.NoError(t, err)

	assert.Equal(t, "notnil", cfg.Engine)
	assert.Equal(t, ArchiveMemory, cfg.Archive)
	assert.Equal(t, "cache:6379", cfg.RedisUrl)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogDevelopment)
}

func TestSetupWithoutFile(t *testing.T) {
	t.Setenv("SANPLAY_ENGINE", "notnil")

	cfg, err := Setup("")
	require.NoError(t, err)
	assert.Equal(t, "notnil", cfg.Engine)
}

func TestImportLimit(t *testing.T) {
	tests := []struct {
		size string
		want int64
		err  bool
	}{
		{"1MB", 1 << 20, false},
		{"512KB", 512 << 10, false},
		{"100B", 100, false},
		{"lots", 0, true},
		{"0B", 0, true},
	}
	for _, tt := range tests {
		got, err := Config{MaxImportSize: tt.size}.ImportLimit()
		if tt.err {
			assert.Error(t, err, tt.size)
			continue
		}
		require.NoError(t, err, tt.size)
		assert.Equal(t, tt.want, got, tt.size)
	}
}
