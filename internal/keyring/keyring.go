// Package keyring reads the artifact encryption passphrase from the OS
// keyring (Keychain, Secret Service, Windows Credential Manager).
package keyring

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "lastpass-export"

// Passphrase retrieves the passphrase stored for account.
func Passphrase(account string) ([]byte, error) {
	secret, err := keyring.Get(serviceName, account)
	if err != nil {
		return nil, fmt.Errorf("keyring lookup for %q: %w", account, err)
	}
	return []byte(secret), nil
}

// SavePassphrase stores a passphrase for account.
func SavePassphrase(account string, passphrase []byte) error {
	return keyring.Set(serviceName, account, string(passphrase))
}

// DeletePassphrase removes the stored passphrase for account.
func DeletePassphrase(account string) error {
	return keyring.Delete(serviceName, account)
}
