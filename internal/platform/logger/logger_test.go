package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")

	log.Info("User created", "user_id", 1)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "User created", line["msg"])
	assert.Equal(t, float64(1), line["user_id"])
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "TEXT")

	log.Info("hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "k=v")
}

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"WARN", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
		{"", false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, tt.level, "text")
			log.Debug("d")
			log.Info("i")
			log.Warn("w")
			out := buf.String()
			assert.Equal(t, tt.debugSeen, strings.Contains(out, "msg=d"))
			assert.Equal(t, tt.infoSeen, strings.Contains(out, "msg=i"))
			assert.Equal(t, tt.warnSeen, strings.Contains(out, "msg=w"))
		})
	}
}
