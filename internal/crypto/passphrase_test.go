package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassphraseFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "pass")
	require.NoError(t, os.WriteFile(path, []byte("s3cret\n"), 0600))

	got, err := PassphraseFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), got, "trailing newline must be stripped")
}

func TestPassphraseFromFileEmpty(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))

	_, err := PassphraseFromFile(path)
	assert.ErrorIs(t, err, ErrNoPassphrase)
}

func TestPassphraseFromFileMissing(t *testing.T) {
	_, err := PassphraseFromFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestPassphraseFromEnv(t *testing.T) {
	t.Setenv(PassphraseEnvVar, "")
	assert.Nil(t, PassphraseFromEnv())

	t.Setenv(PassphraseEnvVar, "from-env")
	got := PassphraseFromEnv()
	assert.Equal(t, []byte("from-env"), got)

	// Clearing the returned copy must not corrupt later reads.
	ClearBytes(got)
	assert.Equal(t, []byte("from-env"), PassphraseFromEnv())
}

func TestClearBytes(t *testing.T) {
	b := []byte("sensitive")
	ClearBytes(b)
	for i, v := range b {
		assert.Zero(t, v, "byte %d not cleared", i)
	}
}
