package crypto

import (
	"crypto/subtle"
	"errors"
	"io"
)

// DefaultSuffix is appended to encrypted artifact names, after any
// content-derived extension.
const DefaultSuffix = "enc"

var (
	ErrNoPassphrase      = errors.New("passphrase is empty")
	ErrUnknownCipher     = errors.New("unknown cipher")
	ErrUnknownKDF        = errors.New("unknown key derivation function")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// Engine transforms artifact bytes on their way to disk. Wrap returns a
// sink that encrypts everything written to it; the ciphertext is not
// complete until Close returns.
type Engine interface {
	// Enabled reports whether the engine actually transforms data.
	Enabled() bool

	// Suffix is the filename suffix for encrypted artifacts, without a
	// leading dot. Empty when the engine is disabled.
	Suffix() string

	// Wrap returns a sink writing (possibly transformed) bytes to w.
	// Each call starts an independent encryption context.
	Wrap(w io.Writer) (io.WriteCloser, error)
}

// Plain is the identity engine used when encryption is disabled.
type Plain struct{}

func (Plain) Enabled() bool  { return false }
func (Plain) Suffix() string { return "" }

func (Plain) Wrap(w io.Writer) (io.WriteCloser, error) {
	return nopCloser{w}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Seal runs data through eng into out. Convenience for callers that
// hold the full artifact in memory.
func Seal(eng Engine, data []byte, out io.Writer) error {
	w, err := eng.Wrap(out)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Close()
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
