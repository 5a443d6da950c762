package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.Mode)
	assert.Nil(t, cfg.Practice.TimeLimit)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[practice]
mode = "words"
difficulty = "hard"
time = 30

[stats]
curve-window = 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.Mode)
	assert.Equal(t, "words", *cfg.Practice.Mode)
	assert.Equal(t, "hard", *cfg.Practice.Difficulty)
	assert.Equal(t, 30, *cfg.Practice.TimeLimit)
	assert.Nil(t, cfg.Practice.Passages)
	assert.Equal(t, 5, *cfg.Stats.CurveWindow)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice]\nlang = \"en\"\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "practice.lang")
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to decode config")
}

func TestPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, filepath.Join("/tmp/cfg", "wpmtest", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/tmp/data", "wpmtest", "wpmtest.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/tmp/data", "wpmtest", "wpmtest.log"), DefaultLogPath())
}
