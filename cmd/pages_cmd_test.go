package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextInput(t *testing.T) {
	text, err := textInput([]string{"learn", "pottery"}, "")
	require.NoError(t, err)
	assert.Equal(t, "learn pottery", text)

	path := filepath.Join(t.TempDir(), "ideas.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o600))
	text, err = textInput([]string{"ignored"}, path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", text)

	_, err = textInput(nil, "")
	assert.Error(t, err)
	_, err = textInput(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
