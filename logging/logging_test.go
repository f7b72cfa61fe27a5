package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(slog.LevelError, ParseLevel("error"))
	assert.Equal(slog.LevelInfo, ParseLevel(""))
}

func TestNewWritesJSONToNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("fretted", "conflicts", 2)

	var entry map[string]any
	assert := assert.New(t)
	assert.NoError(json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal("fretted", entry["msg"])
	assert.Equal(float64(2), entry["conflicts"])
}
