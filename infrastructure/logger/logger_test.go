package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := New(Config{Level: "info", Outputs: []string{"file"}, OutputFile: path, Format: "json"})
	require.NoError(t, err)
	l.LogStage("load", 3*time.Millisecond, map[string]interface{}{"rows": 5})
	// Sync on a regular file must not fail
	require.NoError(t, l.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"stage":"load"`), string(raw))
	assert.True(t, strings.Contains(string(raw), `"rows":5`), string(raw))
}

func TestLogStageAndError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core)).WithFields(map[string]interface{}{"pipeline": "price"})

	l.LogStage("resample", time.Millisecond, nil)
	l.LogError(errors.New("boom"), map[string]interface{}{"stage": "render"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "pipeline_stage", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "price", fields["pipeline"])
	assert.Equal(t, "resample", fields["stage"])
	assert.Equal(t, 1.0, fields["tookMs"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.LogStage("load", 0, nil)
	assert.NotNil(t, l.Logger)
}
