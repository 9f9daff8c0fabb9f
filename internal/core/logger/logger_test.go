package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rp-market/internal/core/config"
)

func TestBuild_JSONAndRotate(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "app.log")
	l, done := Build(Options{
		Level:  "debug",
		JSON:   true,
		Out:    zapcore.AddSync(&buf),
		Rotate: FileRotate{Enable: true, Filename: file, MaxSizeMB: 1},
	})
	l.Info("order created", zap.String("order_id", "o1"))
	done()

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "order created", line["msg"])
	assert.Equal(t, "o1", line["order_id"])
	assert.Contains(t, line, "ts")
	assert.FileExists(t, file)
}

func TestBuild_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, done := Build(Options{Level: "warn", JSON: true, Out: zapcore.AddSync(&buf)})
	l.Info("dropped")
	done()
	assert.Empty(t, buf.String())
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, done := Build(Options{Level: "info", JSON: true, Out: zapcore.AddSync(&buf)})
	w := ToWriter(l, zapcore.ErrorLevel)
	_, err := io.WriteString(w, "gin: boom\n")
	require.NoError(t, err)
	done()
	assert.Contains(t, buf.String(), `"msg":"gin: boom"`)
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestFromConfig_Fields(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rp.log")
	l, done := FromConfig(
		config.Log{Level: "info", JSON: true, File: config.FileLog{Enable: true, Filename: file, MaxSizeMB: 1}},
		config.App{Name: "rp-market", Env: "test"},
	)
	l.Info("booted")
	done()

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &line))
	assert.Equal(t, "rp-market", line["app"])
	assert.Equal(t, "test", line["env"])
}
