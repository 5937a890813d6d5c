package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestWriterLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.DebugLevel)

	l.Warn("notification failed",
		String("ticker", "AAPL"),
		Int("attempt", 2),
		Float64("probability", 0.71),
		Bool("filtered", false),
		Duration("latency_ms", 1500*time.Millisecond),
		Error(errors.New("boom")),
	)

	m := decodeLine(t, &buf)
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, "notification failed", m["message"])
	assert.Equal(t, "AAPL", m["ticker"])
	assert.Equal(t, 2.0, m["attempt"])
	assert.Equal(t, 0.71, m["probability"])
	assert.Equal(t, false, m["filtered"])
	assert.Equal(t, 1500.0, m["latency_ms"])
	assert.Equal(t, "boom", m["error"])
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel).With(String("component", "engine"))

	l.Info("evaluated")
	m := decodeLine(t, &buf)
	assert.Equal(t, "engine", m["component"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel)
	l.Debug("hidden")
	assert.Zero(t, buf.Len())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("ignored", String("k", "v")) })
}
