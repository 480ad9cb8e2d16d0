package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
		logger, err := New(level, "")
		require.NoError(t, err, level)
		require.NotNil(t, logger)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("shouting", "")
	require.Error(t, err)
}

func TestNew_LevelEnabled(t *testing.T) {
	logger, err := New("warn", "")
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_CreatesLogFileDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "dir", "ragdex.log")

	logger, err := New("info", logFile)
	require.NoError(t, err)

	logger.Info("hello")
	logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
