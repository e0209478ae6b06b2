package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "Text info", level: "info", format: "text"},
		{name: "Upper case", level: "DEBUG", format: "JSON"},
		{name: "Logfmt", level: "warn", format: "logfmt"},
		{name: "Empty format", level: "error", format: ""},
		{name: "Bad level", level: "loud", format: "text", wantErr: true},
		{name: "Bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := New(&bytes.Buffer{}, tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown", "room", "lobby")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "lobby", entry["room"])
}

func TestLogPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(&buf, "info", "json")
	require.NoError(t, err)

	LogPanic(l, "boom", "room", "lobby")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["panic"])
	assert.Equal(t, "lobby", entry["room"])
	assert.Contains(t, entry["stack"], "runtime/debug")
}
