package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	entries := map[string]string{}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		if hdr.Typeflag == tar.TypeDir {
			entries[hdr.Name] = ""
			continue
		}
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		entries[hdr.Name] = string(data)
	}
	return entries
}

func TestCreate(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "0-1.json"), []byte(`{"id":"0-1"}`), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(src, "0-1"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(src, "0-1", "statement.pdf"), []byte("%PDF-"), 0600))

	dst := filepath.Join(t.TempDir(), "backup.tar.gz")
	require.NoError(t, Create(dst, src))

	entries := readArchive(t, dst)
	assert.Equal(t, map[string]string{
		"0-1.json":          `{"id":"0-1"}`,
		"0-1/":              "",
		"0-1/statement.pdf": "%PDF-",
	}, entries)
}

func TestCreateExcludesItself(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "item.txt"), []byte("data"), 0600))

	// Archive written inside the directory being archived.
	dst := filepath.Join(src, "backup.tar.gz")
	require.NoError(t, Create(dst, src))

	entries := readArchive(t, dst)
	_, hasSelf := entries["backup.tar.gz"]
	assert.False(t, hasSelf)
	assert.Contains(t, entries, "item.txt")
}

func TestCreateEmptyDir(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "empty.tar.gz")
	require.NoError(t, Create(dst, t.TempDir()))
	assert.Empty(t, readArchive(t, dst))
}
