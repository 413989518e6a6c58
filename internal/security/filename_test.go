package security

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	for _, good := range []string{"statement.pdf", "att-1234-1", "0-1.json.enc", "photo"} {
		got, err := SafeName(good)
		require.NoError(t, err, good)
		assert.Equal(t, good, got)
	}

	for _, bad := range []string{
		"",
		"..",
		"../escape",
		"a/b",
		`a\b`,
		"/etc/passwd",
		"./dotted",
	} {
		_, err := SafeName(bad)
		assert.Error(t, err, "expected rejection of %q", bad)
	}
}

func TestJoin(t *testing.T) {
	root := t.TempDir()

	got, err := Join(root, "0-1", "statement.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "0-1", "statement.pdf"), got)

	_, err = Join(root, "..", "escape")
	assert.Error(t, err)

	_, err = Join(root, "item", "../../escape")
	assert.Error(t, err)
}
