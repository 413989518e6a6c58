package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sealCBC(t *testing.T, engine *CBC, plaintext []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Seal(engine, plaintext, &buf))
	return buf.Bytes()
}

func TestCBCRoundTrip(t *testing.T) {
	engine, err := NewCBC([]byte("correct horse"), "aes-256-cbc", "pbkdf2", 1000, "enc")
	require.NoError(t, err)

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	sealed := sealCBC(t, engine, plaintext)

	got, err := engine.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestCBCEnvelopeLayout(t *testing.T) {
	engine, err := NewCBC([]byte("pw"), "aes-256-cbc", "pbkdf2", 1000, "enc")
	require.NoError(t, err)

	sealed := sealCBC(t, engine, []byte("data"))

	// OpenSSL enc envelope: magic, 8-byte salt, block-aligned ciphertext.
	require.Greater(t, len(sealed), headerSize)
	assert.Equal(t, saltMagic, string(sealed[:len(saltMagic)]))
	assert.Equal(t, 0, (len(sealed)-headerSize)%16)
}

func TestCBCFreshSaltPerArtifact(t *testing.T) {
	engine, err := NewCBC([]byte("pw"), "aes-256-cbc", "pbkdf2", 1000, "enc")
	require.NoError(t, err)

	first := sealCBC(t, engine, []byte("same plaintext"))
	second := sealCBC(t, engine, []byte("same plaintext"))

	assert.NotEqual(t, first, second, "same input must never produce the same envelope")
}

func TestCBCWrongPassphrase(t *testing.T) {
	engine, err := NewCBC([]byte("right"), "aes-256-cbc", "pbkdf2", 1000, "enc")
	require.NoError(t, err)
	sealed := sealCBC(t, engine, []byte("secret payload"))

	wrong, err := NewCBC([]byte("wrong"), "aes-256-cbc", "pbkdf2", 1000, "enc")
	require.NoError(t, err)

	got, err := wrong.Decrypt(sealed)
	if err == nil {
		// Padding can accidentally validate; the plaintext still must not
		// come back.
		assert.NotEqual(t, []byte("secret payload"), got)
	}
}

func TestCBCKeySizes(t *testing.T) {
	for name, size := range map[string]int{"aes-128-cbc": 16, "aes-192-cbc": 24, "aes-256-cbc": 32} {
		engine, err := NewCBC([]byte("pw"), name, "pbkdf2", 1000, "enc")
		require.NoError(t, err, name)
		assert.Equal(t, size, engine.keySize)
	}

	_, err := NewCBC([]byte("pw"), "des-ede3-cbc", "pbkdf2", 1000, "enc")
	assert.ErrorIs(t, err, ErrUnknownCipher)

	_, err = NewCBC([]byte("pw"), "aes-256-cbc", "scrypt", 1000, "enc")
	assert.ErrorIs(t, err, ErrUnknownKDF)

	_, err = NewCBC(nil, "aes-256-cbc", "pbkdf2", 1000, "enc")
	assert.ErrorIs(t, err, ErrNoPassphrase)
}

func TestCBCEmptyPlaintext(t *testing.T) {
	engine, err := NewCBC([]byte("pw"), "aes-256-cbc", "pbkdf2", 1000, "enc")
	require.NoError(t, err)

	sealed := sealCBC(t, engine, nil)
	got, err := engine.Decrypt(sealed)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	engine, err := NewCBC([]byte("pw"), "aes-256-cbc", "pbkdf2", 1000, "enc")
	require.NoError(t, err)

	for _, data := range [][]byte{nil, []byte("short"), []byte("NotSalt_12345678aaaaaaaaaaaaaaaa")} {
		_, err := engine.Decrypt(data)
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	}
}

func TestPKCS7(t *testing.T) {
	for length := 0; length <= 33; length++ {
		data := bytes.Repeat([]byte{0xab}, length)
		padded := padPKCS7(data, 16)
		require.Equal(t, 0, len(padded)%16)
		require.Greater(t, len(padded), len(data))

		got, err := unpadPKCS7(padded, 16)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}

	_, err := unpadPKCS7([]byte{1, 2, 3}, 16)
	assert.Error(t, err)
}
