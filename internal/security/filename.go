package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyName   = errors.New("empty name not allowed")
	ErrUnsafeName  = errors.New("name is not a safe file name")
	ErrEscapesRoot = errors.New("path escapes output directory")
)

// SafeName validates a vault-supplied name (item id, attachment id or
// declared attachment filename) for use as a single path element under the
// output directory. Vault content is attacker-influenced, so names carrying
// separators, traversal sequences or reserved names are rejected rather
// than silently rewritten.
func SafeName(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	// Reject anything that is not a plain local path without separators.
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeName, name)
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeName, name)
	}
	if name != filepath.Clean(name) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeName, name)
	}

	return name, nil
}

// Join resolves one or more vault-supplied path elements against root,
// validating each element, and verifies the result stays inside root.
func Join(root string, elems ...string) (string, error) {
	parts := make([]string, 0, len(elems)+1)
	parts = append(parts, root)
	for _, e := range elems {
		safe, err := SafeName(e)
		if err != nil {
			return "", err
		}
		parts = append(parts, safe)
	}

	joined := filepath.Join(parts...)

	rel, err := filepath.Rel(root, joined)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, joined)
	}

	return joined, nil
}
