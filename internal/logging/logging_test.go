package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	logger, err := New(Options{Level: "error", Verbose: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_WritesConsoleLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spaggo.log")
	logger, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Named("service").Info("logged in", zap.String("student_id", "1234567"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	fields := strings.Split(strings.TrimSpace(string(data)), "\t")
	require.GreaterOrEqual(t, len(fields), 5, "want tab-separated console columns")
	assert.Equal(t, []string{"INFO", "service", "logged in"}, fields[1:4])
	assert.Contains(t, fields[4], `"student_id": "1234567"`)
}
