package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backups(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		if e.Name() != "app.log" {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestDailyRotator_RollsOnWindowChange(t *testing.T) {
	dir := t.TempDir()
	r := NewDailyRotator(RotateConfig{Filename: filepath.Join(dir, "app.log")})
	t.Cleanup(func() { _ = r.Close() })

	day := time.Date(2024, 3, 1, 23, 59, 0, 0, time.Local)
	r.now = func() time.Time { return day }

	_, err := r.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = r.Write([]byte("same window\n"))
	require.NoError(t, err)
	assert.Empty(t, backups(t, dir))

	day = day.Add(2 * time.Minute)
	_, err = r.Write([]byte("second\n"))
	require.NoError(t, err)

	rolled := backups(t, dir)
	require.Len(t, rolled, 1)
	assert.True(t, strings.HasPrefix(rolled[0], "app-"))

	old, err := os.ReadFile(filepath.Join(dir, rolled[0]))
	require.NoError(t, err)
	assert.Equal(t, "first\nsame window\n", string(old))

	current, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(current))
}

func TestDailyRotator_RollsStaleFileOnFirstWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte("yesterday\n"), 0o644))

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, stale, stale))

	r := NewDailyRotator(RotateConfig{Filename: path})
	t.Cleanup(func() { _ = r.Close() })

	_, err := r.Write([]byte("today\n"))
	require.NoError(t, err)

	assert.Len(t, backups(t, dir), 1)
	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "today\n", string(current))
}

func TestDailyRotator_AppendsWithinWindow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0o644))

	r := NewDailyRotator(RotateConfig{Filename: path})
	t.Cleanup(func() { _ = r.Close() })

	_, err := r.Write([]byte("later\n"))
	require.NoError(t, err)

	assert.Empty(t, backups(t, dir))
	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "earlier\nlater\n", string(current))
}
