package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLog(t *testing.T) {
	log := GetLog("Test")
	log.InfoF("Hello world: %s", "name")
	assert.Equal(t, ErrClosedLog, CloseLog())
}

func TestFileLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	require.Nil(t, InitLogger(path, 1<<20, time.Hour, false))
	assert.Equal(t, ErrReInitializeLog, InitLogger(path, 1<<20, time.Hour, false))
	log := GetLog("Projector")
	log.InfoF("projected %d rows", 3)
	log.DebugF("hidden")
	SetLevel(DEBUG)
	log.DebugF("shown")
	SetLevel(INFO)
	require.Nil(t, CloseLog())

	data, err := os.ReadFile(path)
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "[Projector] [INFO]: projected 3 rows"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "[Projector] [DEBUG]: shown"), lines[1])
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	assert.Nil(t, err)
	assert.Equal(t, WARN, level)
	_, err = ParseLevel("loud")
	assert.NotNil(t, err)
}
