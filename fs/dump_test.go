package fs_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/castgraph/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string) (*fs.Dump, string) {
	t.Helper()
	d, err := fs.OpenDump(path)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	b, err := io.ReadAll(d)
	require.NoError(t, err)
	return d, string(b)
}

func TestOpenDump(t *testing.T) {
	t.Parallel()

	plain, err := os.ReadFile(filepath.Join("testdata", "sample.xml"))
	require.NoError(t, err)

	t.Run("reads plain XML as is", func(t *testing.T) {
		t.Parallel()

		d, got := readAll(t, filepath.Join("testdata", "sample.xml"))

		assert.Equal(t, string(plain), got)
		assert.False(t, d.Compressed())
		assert.Equal(t, int64(len(plain)), d.Size())
	})

	t.Run("decompresses bzip2", func(t *testing.T) {
		t.Parallel()

		d, got := readAll(t, filepath.Join("testdata", "sample.xml.bz2"))

		assert.Equal(t, string(plain), got)
		assert.True(t, d.Compressed())
		assert.Less(t, d.Size(), int64(len(plain))+200)
	})

	t.Run("detects compression by content not name", func(t *testing.T) {
		t.Parallel()

		src, err := os.ReadFile(filepath.Join("testdata", "sample.xml.bz2"))
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "dump.xml")
		require.NoError(t, os.WriteFile(path, src, 0644))

		d, got := readAll(t, path)

		assert.True(t, d.Compressed())
		assert.Equal(t, string(plain), got)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.xml")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		d, got := readAll(t, path)

		assert.Empty(t, got)
		assert.False(t, d.Compressed())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.OpenDump(filepath.Join(t.TempDir(), "missing.xml"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
