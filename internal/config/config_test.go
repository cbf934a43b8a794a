package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Replay.Enabled)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 4, cfg.Game.Colors)
	assert.Equal(t, 9, cfg.Game.Ranks)
	assert.Equal(t, 4, cfg.Game.Rockets)
	assert.Equal(t, 3, cfg.Game.Players)
	assert.Equal(t, 3, cfg.Game.Tasks)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  addr: ":9090"
logging:
  level: debug
  format: json
replay:
  enabled: true
  dir: /tmp/replays
game:
  players: 5
  tasks: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Replay.Enabled)
	assert.Equal(t, "/tmp/replays", cfg.Replay.Dir)
	assert.Equal(t, 5, cfg.Game.Players)
	assert.Equal(t, 2, cfg.Game.Tasks)
	// Unset game fields keep their defaults.
	assert.Equal(t, 4, cfg.Game.Colors)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadGameDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  players: 1\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
