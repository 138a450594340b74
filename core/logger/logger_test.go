package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
}

func TestColoredLogger_DebugSuppressedUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.now = fixedClock

	l.Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.SetVerbose(true)
	l.Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.True(t, l.IsVerbose())
}

func TestColoredLogger_PlainFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.now = fixedClock
	l.SetColors(false)

	l.Warn("field %q missing", "type")

	assert.Equal(t, "[25-03-04 05:06:07] WARN  field \"type\" missing\n", buf.String())
}

func TestColoredLogger_ColoredFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.now = fixedClock

	l.Error("boom")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, ColorGray+"["))
	assert.Contains(t, out, ColorRed+"ERROR")
	assert.Contains(t, out, "boom")
}

func TestColoredLogger_AddWriterForAll(t *testing.T) {
	var primary, file bytes.Buffer
	l := New(&primary, true)
	l.SetColors(false)
	l.AddWriterForAll(&file)
	l.AddWriterForAll(&file)

	l.Info("tee")

	assert.Contains(t, primary.String(), "tee")
	require.Equal(t, 2, strings.Count(file.String(), "tee"))
}

func TestGetLogFromLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	l.SetColors(false)

	GetLogFromLevel(l, WARN)("via %s", "level")

	assert.Contains(t, buf.String(), "WARN  via level")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error("nothing %d", 1)
	})
}
