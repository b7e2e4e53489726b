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
	conf, err := Load("")
	require.Nil(t, err)
	assert.Equal(t, 1024, conf.Exec.BatchSize)
	assert.True(t, conf.Exec.CheckOverflow)
	assert.Equal(t, time.Second, conf.Log.FlushInterval)
	assert.Equal(t, "info", conf.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colexpr.yaml")
	data := "log:\n  level: debug\n  flush_interval: 250ms\nexec:\n  batch_size: 16\n  check_overflow: false\n"
	require.Nil(t, os.WriteFile(path, []byte(data), 0644))
	t.Setenv("COLEXPR_EXEC_BATCH_SIZE", "32")

	conf, err := Load(path)
	require.Nil(t, err)
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, 250*time.Millisecond, conf.Log.FlushInterval)
	assert.Equal(t, 32, conf.Exec.BatchSize)
	assert.False(t, conf.Exec.CheckOverflow)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
	t.Setenv("COLEXPR_EXEC_BATCH_SIZE", "0")
	_, err = Load("")
	assert.NotNil(t, err)
}
