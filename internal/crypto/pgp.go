package crypto

import (
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// pgpCiphers maps gpg-style cipher names to OpenPGP cipher functions.
var pgpCiphers = map[string]packet.CipherFunction{
	"aes":    packet.CipherAES128,
	"aes128": packet.CipherAES128,
	"aes192": packet.CipherAES192,
	"aes256": packet.CipherAES256,
}

// PGP encrypts artifacts with OpenPGP symmetric encryption: a fresh
// random session key per artifact, protected by the passphrase. No
// separate KDF selection; the string-to-key setup is the engine's own.
type PGP struct {
	passphrase []byte
	cipher     packet.CipherFunction
	suffix     string
}

// NewPGP creates a PGP engine. cipherName defaults to aes256 when empty.
func NewPGP(passphrase []byte, cipherName, suffix string) (*PGP, error) {
	if len(passphrase) == 0 {
		return nil, ErrNoPassphrase
	}
	if cipherName == "" {
		cipherName = "aes256"
	}
	cf, ok := pgpCiphers[cipherName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCipher, cipherName)
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &PGP{passphrase: passphrase, cipher: cf, suffix: suffix}, nil
}

func (p *PGP) Enabled() bool  { return true }
func (p *PGP) Suffix() string { return p.suffix }

// Wrap returns a streaming OpenPGP encryption sink writing to w.
func (p *PGP) Wrap(w io.Writer) (io.WriteCloser, error) {
	wc, err := openpgp.SymmetricallyEncrypt(w, p.passphrase, nil, &packet.Config{
		DefaultCipher: p.cipher,
	})
	if err != nil {
		return nil, fmt.Errorf("start pgp encryption: %w", err)
	}
	return wc, nil
}

// Decrypt opens an OpenPGP symmetric message. Used by tests and decrypt
// tooling.
func (p *PGP) Decrypt(r io.Reader) ([]byte, error) {
	attempted := false
	md, err := openpgp.ReadMessage(r, nil, func(keys []openpgp.Key, symmetric bool) ([]byte, error) {
		if attempted {
			return nil, fmt.Errorf("wrong passphrase")
		}
		attempted = true
		return p.passphrase, nil
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("read pgp message: %w", err)
	}
	return io.ReadAll(md.UnverifiedBody)
}
