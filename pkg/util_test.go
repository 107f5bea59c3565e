package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBytesToString(t *testing.T) {
	want := "test"
	stringBytes := []byte(want)
	got := BytesToString(stringBytes)
	assert.Equal(t, want, got)
}

func TestPathExists(t *testing.T) {
	exists, err := PathExists("/invalid/path/some-dir", true)
	assert.NoError(t, err)
	assert.False(t, exists)
	exists, err = PathExists("/invalid/path/some-file", false)
	assert.NoError(t, err)
	assert.False(t, exists)

	tempDir := t.TempDir()
	exists, err = PathExists(tempDir, true)
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, err = PathExists(tempDir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
	assert.False(t, exists)

	file := filepath.Join(tempDir, "dailyActivity_merged.csv")
	require.NoError(t, os.WriteFile(file, []byte("Id\n"), 0o600))
	exists, err = PathExists(file, false)
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, err = PathExists(file, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
	assert.False(t, exists)
}
