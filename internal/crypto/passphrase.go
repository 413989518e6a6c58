package crypto

import (
	"bytes"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"
)

// PassphraseEnvVar is the environment fallback for the artifact
// encryption passphrase.
const PassphraseEnvVar = "LPASS_EXPORT_PASSPHRASE"

// PassphraseFromFile reads the passphrase from path. Trailing newlines
// are stripped so a file created with echo works as expected. An empty
// or unreadable file is a configuration error, caught once at startup.
func PassphraseFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read passphrase file: %w", err)
	}
	data = bytes.TrimRight(data, "\r\n")
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPassphrase, path)
	}
	return data, nil
}

// PassphraseFromEnv reads the passphrase from the environment, returning
// nil when unset.
func PassphraseFromEnv() []byte {
	v := os.Getenv(PassphraseEnvVar)
	if v == "" {
		return nil
	}
	// Return a copy so clearing the result does not touch the environment copy.
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// ReadPassphrase reads a passphrase from the terminal without echoing.
func ReadPassphrase(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return pass, nil
}

// ReadPassphraseConfirm reads the passphrase twice and ensures both
// entries match.
func ReadPassphraseConfirm() ([]byte, error) {
	first, err := ReadPassphrase("Encryption passphrase: ")
	if err != nil {
		return nil, err
	}
	defer ClearBytes(first)

	second, err := ReadPassphrase("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}
	defer ClearBytes(second)

	if !ConstantTimeCompare(first, second) {
		return nil, fmt.Errorf("passphrases do not match")
	}
	if len(first) == 0 {
		return nil, ErrNoPassphrase
	}

	out := make([]byte, len(first))
	copy(out, first)
	return out, nil
}
