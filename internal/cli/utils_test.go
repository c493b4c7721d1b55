package cli

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptWithRetryStopsAtEndOfInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := promptWithRetry(reader, "> ", validateSource)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptWithRetryRetriesInvalidInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("nowhere\nmirror\n"))

	got, err := promptWithRetry(reader, "> ", validateSource)
	require.NoError(t, err)
	assert.Equal(t, "mirror", got)
}

func TestPromptWithRetryAcceptsLastLineWithoutNewline(t *testing.T) {
	got, err := promptOptional(bufio.NewReader(strings.NewReader("Samsung")), "> ", "LG")
	require.NoError(t, err)
	assert.Equal(t, "Samsung", got)

	_, err = promptYesNo(bufio.NewReader(strings.NewReader("maybe")), "> ")
	assert.ErrorIs(t, err, io.EOF)
}
