package cmd

import (
	"fmt"

	"github.com/ErinsMatthew/lastpass-export/internal/config"
	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/keyring"
)

// buildEngine constructs the encryption engine for the run, resolving
// the passphrase from the configured source. Called once at startup so
// an empty or unreadable passphrase source fails before any vault
// contact.
func buildEngine(enc config.Encryption) (crypto.Engine, error) {
	if !enc.Enabled {
		return crypto.Plain{}, nil
	}

	passphrase, err := resolvePassphrase(enc)
	if err != nil {
		return nil, err
	}

	if enc.Program == config.ProgramGPG {
		return crypto.NewPGP(passphrase, enc.Cipher, enc.Suffix)
	}
	return crypto.NewCBC(passphrase, enc.Cipher, enc.KDF, enc.Iterations, enc.Suffix)
}

// resolvePassphrase reads the passphrase from the first configured
// source: file, OS keyring, environment, interactive prompt.
func resolvePassphrase(enc config.Encryption) ([]byte, error) {
	if enc.PassphraseFile != "" {
		return crypto.PassphraseFromFile(enc.PassphraseFile)
	}
	if enc.KeyringAccount != "" {
		return keyring.Passphrase(enc.KeyringAccount)
	}
	if passphrase := crypto.PassphraseFromEnv(); passphrase != nil {
		return passphrase, nil
	}
	if enc.Prompt {
		return crypto.ReadPassphraseConfirm()
	}
	return nil, fmt.Errorf("%w: encryption requested but no passphrase source configured", crypto.ErrNoPassphrase)
}
