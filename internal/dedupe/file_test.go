package dedupe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finvoy/ledger-notify/internal/dedupe"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notified.log")

	store, err := dedupe.OpenFileStore(path)
	require.NoError(t, err)

	assert.False(t, store.Contains(42))
	require.NoError(t, store.Add(42))
	require.NoError(t, store.Add(7))
	assert.True(t, store.Contains(42))
	assert.True(t, store.Contains(7))
	require.NoError(t, store.Close())

	// a fresh process sees everything notified so far
	reopened, err := dedupe.OpenFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, reopened.Contains(42))
	assert.True(t, reopened.Contains(7))
	assert.False(t, reopened.Contains(99))
}

func TestFileStore_AppendsOneIDPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notified.log")

	store, err := dedupe.OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(1))
	require.NoError(t, store.Add(2))
	require.NoError(t, store.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", string(data))
}

func TestFileStore_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notified.log")
	require.NoError(t, os.WriteFile(path, []byte("12\nnot-a-number\n\n34\n"), 0o644))

	store, err := dedupe.OpenFileStore(path)
	require.NoError(t, err)
	defer store.Close()

	assert.True(t, store.Contains(12))
	assert.True(t, store.Contains(34))
	assert.False(t, store.Contains(0))
}
