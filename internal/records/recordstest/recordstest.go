// Package recordstest provides a small set of activity export fixtures
// shared by tests across packages.
package recordstest

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/fitinsights/internal/records"

	"github.com/stretchr/testify/require"
)

//go:embed fixtures/*.csv
var fixtures embed.FS

// Known users in the fixtures.
const (
	// UserActive has daily, hourly, minute and sleep rows.
	UserActive int64 = 1503960366
	// UserSedentary has daily activity rows only.
	UserSedentary int64 = 1624580081
	// UserSleeper has two sleep rows, one with zero time in bed.
	UserSleeper int64 = 1644430081
	// UserHeart has heart rate and MET rows only.
	UserHeart int64 = 2022484408
	// UserUnknown is not present anywhere.
	UserUnknown int64 = 42
)

// FS returns the fixture files as a file system rooted at the export directory.
func FS() fs.FS {
	sub, err := fs.Sub(fixtures, "fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}

// Store loads the fixtures.
func Store(t *testing.T) *records.Store {
	t.Helper()
	store, err := records.LoadFS(context.Background(), FS())
	require.NoError(t, err)
	return store
}

// WriteDir copies the fixtures into a fresh temp dir and returns its path.
// Files named in skip are left out.
func WriteDir(t *testing.T, skip ...string) string {
	t.Helper()

	skipped := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipped[name] = true
	}

	dir := t.TempDir()
	entries, err := fs.ReadDir(FS(), ".")
	require.NoError(t, err)
	for _, e := range entries {
		if skipped[e.Name()] {
			continue
		}
		data, err := fs.ReadFile(FS(), e.Name())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o600))
	}
	return dir
}
