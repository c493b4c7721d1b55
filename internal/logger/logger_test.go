package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLogLevel("debug"))
	assert.Equal(t, WARNING, ParseLogLevel("warn"))
	assert.Equal(t, WARNING, ParseLogLevel(" WARNING "))
	assert.Equal(t, ERROR, ParseLogLevel("ERROR"))
	assert.Equal(t, INFO, ParseLogLevel("verbose"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(WARNING, &buf)

	l.Info("hidden %d", 1)
	l.Warning("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARNING] ")
	assert.Contains(t, out, "shown 2")
}

func TestNamedLoggerPrefixesAndSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(INFO, &buf)
	child := root.Named("backend").Named("rpc")

	child.Debug("not yet")
	root.SetLevel(DEBUG)
	child.Debug("now %s", "visible")

	out := buf.String()
	assert.NotContains(t, out, "not yet")
	assert.Contains(t, out, "[backend.rpc] now visible")
}
