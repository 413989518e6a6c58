package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations matches the openssl enc -pbkdf2 default, keeping
	// exported artifacts decryptable with stock openssl.
	DefaultIterations = 10000

	saltSize   = 8
	saltMagic  = "Salted__"
	headerSize = len(saltMagic) + saltSize
)

// cbcKeySizes maps OpenSSL cipher names to AES key sizes.
var cbcKeySizes = map[string]int{
	"aes-128-cbc": 16,
	"aes-192-cbc": 24,
	"aes-256-cbc": 32,
}

// CBC encrypts artifacts in the OpenSSL enc envelope format:
// "Salted__" + 8-byte salt + AES-CBC ciphertext, key and IV derived
// together from the passphrase with PBKDF2-HMAC-SHA256.
type CBC struct {
	passphrase []byte
	keySize    int
	iterations int
	suffix     string
}

// NewCBC creates a CBC engine. cipherName selects the AES key size
// (aes-128-cbc, aes-192-cbc or aes-256-cbc); kdfName must be "pbkdf2".
func NewCBC(passphrase []byte, cipherName, kdfName string, iterations int, suffix string) (*CBC, error) {
	if len(passphrase) == 0 {
		return nil, ErrNoPassphrase
	}
	if cipherName == "" {
		cipherName = "aes-256-cbc"
	}
	if kdfName == "" {
		kdfName = "pbkdf2"
	}
	keySize, ok := cbcKeySizes[cipherName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCipher, cipherName)
	}
	if kdfName != "pbkdf2" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKDF, kdfName)
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &CBC{
		passphrase: passphrase,
		keySize:    keySize,
		iterations: iterations,
		suffix:     suffix,
	}, nil
}

func (c *CBC) Enabled() bool  { return true }
func (c *CBC) Suffix() string { return c.suffix }

// Wrap returns a sink that buffers plaintext and writes the complete
// envelope to w on Close. CBC needs whole blocks, and the salt header
// must precede the first ciphertext byte, so the envelope is assembled
// once all plaintext is in.
func (c *CBC) Wrap(w io.Writer) (io.WriteCloser, error) {
	return &cbcWriter{engine: c, dst: w}, nil
}

type cbcWriter struct {
	engine *CBC
	dst    io.Writer
	buf    bytes.Buffer
	closed bool
}

func (cw *cbcWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

func (cw *cbcWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true

	sealed, err := cw.engine.encrypt(cw.buf.Bytes())
	if err != nil {
		return err
	}
	_, err = cw.dst.Write(sealed)
	return err
}

func (c *CBC) encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key, iv := c.deriveKeyIV(salt)
	defer ClearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	padded := padPKCS7(plaintext, aes.BlockSize)
	out := make([]byte, headerSize+len(padded))
	copy(out, saltMagic)
	copy(out[len(saltMagic):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[headerSize:], padded)

	return out, nil
}

// Decrypt reverses encrypt. Used by tests and decrypt tooling.
func (c *CBC) Decrypt(data []byte) ([]byte, error) {
	if len(data) < headerSize || string(data[:len(saltMagic)]) != saltMagic {
		return nil, ErrInvalidCiphertext
	}
	ct := data[headerSize:]
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, ErrInvalidCiphertext
	}

	key, iv := c.deriveKeyIV(data[len(saltMagic):headerSize])
	defer ClearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)

	return unpadPKCS7(plain, aes.BlockSize)
}

// deriveKeyIV derives key material and IV in a single PBKDF2 pass, the
// way openssl enc -pbkdf2 does.
func (c *CBC) deriveKeyIV(salt []byte) (key, iv []byte) {
	derived := pbkdf2.Key(c.passphrase, salt, c.iterations, c.keySize+aes.BlockSize, sha256.New)
	return derived[:c.keySize], derived[c.keySize:]
}

func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidCiphertext
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrInvalidCiphertext
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidCiphertext
		}
	}
	return data[:len(data)-n], nil
}
