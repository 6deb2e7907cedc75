package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Options(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig(&buf, 3,
		WithForcePlain(true),
		WithNoColor(true),
		WithLibraryName("Lab Shared"),
	)

	assert.Equal(t, &buf, cfg.Output)
	assert.Equal(t, int64(3), cfg.LibraryID)
	assert.True(t, cfg.ForcePlain)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "Lab Shared", cfg.LibraryName)
}

func TestIsTTY_NonFileWriter(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.False(t, IsTTY(nil))
}

func TestDetectCI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.True(t, DetectCI())
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer text", 5))
	// Width floor keeps at least a few runes visible.
	assert.Equal(t, "wid…", truncate("widest", 1))
}
