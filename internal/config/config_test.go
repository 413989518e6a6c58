package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/lpass"
)

func validRun(t *testing.T) Run {
	t.Helper()
	cfg := Default()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func TestDefaultIsValid(t *testing.T) {
	cfg := validRun(t)
	assert.NoError(t, cfg.Validate())
}

func TestNothingToDo(t *testing.T) {
	cfg := validRun(t)
	cfg.ExportItems = false
	cfg.BuildIndex = false
	assert.ErrorIs(t, cfg.Validate(), ErrNothingToDo)

	// Index-only is a valid run.
	cfg.BuildIndex = true
	assert.NoError(t, cfg.Validate())
}

func TestOutputDirMustExist(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "does-not-exist")
	assert.Error(t, cfg.Validate())
}

func TestOutputDirMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a-file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	cfg := Default()
	cfg.OutputDir = file
	assert.Error(t, cfg.Validate())
}

func TestJobsMustBePositive(t *testing.T) {
	cfg := validRun(t)
	cfg.Jobs = 0
	assert.Error(t, cfg.Validate())
}

func TestIndexFileRequiredWhenIndexing(t *testing.T) {
	cfg := validRun(t)
	cfg.BuildIndex = true
	cfg.IndexFile = ""
	assert.Error(t, cfg.Validate())
}

func TestFormatValues(t *testing.T) {
	cfg := validRun(t)
	cfg.Format = lpass.FormatJSON
	assert.NoError(t, cfg.Validate())

	cfg.Format = lpass.Format("yaml")
	assert.Error(t, cfg.Validate())
}

func TestEncryptionValidation(t *testing.T) {
	cfg := validRun(t)
	cfg.Encryption.Enabled = true
	assert.NoError(t, cfg.Validate())

	cfg.Encryption.Program = "rot13"
	assert.Error(t, cfg.Validate())

	cfg.Encryption.Program = ProgramOpenSSL
	cfg.Encryption.KDF = "scrypt"
	assert.Error(t, cfg.Validate())

	// The gpg engine manages its own key derivation.
	cfg.Encryption.Program = ProgramGPG
	assert.NoError(t, cfg.Validate())

	cfg.Encryption.KDF = "pbkdf2"
	cfg.Encryption.Suffix = ""
	assert.Error(t, cfg.Validate())
}

func TestEncryptionDisabledSkipsChecks(t *testing.T) {
	cfg := validRun(t)
	cfg.Encryption = Encryption{}
	assert.NoError(t, cfg.Validate())
}

func TestHasSource(t *testing.T) {
	t.Setenv(crypto.PassphraseEnvVar, "")

	var enc Encryption
	assert.False(t, enc.HasSource())

	assert.True(t, Encryption{PassphraseFile: "f"}.HasSource())
	assert.True(t, Encryption{KeyringAccount: "a"}.HasSource())
	assert.True(t, Encryption{Prompt: true}.HasSource())

	t.Setenv(crypto.PassphraseEnvVar, "pw")
	assert.True(t, enc.HasSource())
}

func TestNormalizeResolvesAbsolute(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = "."

	got, err := cfg.Normalize()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got.OutputDir))
}
