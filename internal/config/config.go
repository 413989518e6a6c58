// Package config holds the immutable run configuration. It is built once
// in main from the flag surface, validated before any vault contact, and
// shared read-only by every pipeline component.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/lpass"
	"github.com/ErinsMatthew/lastpass-export/internal/report"
)

// ErrNothingToDo means both item export and index generation are
// disabled, so the run would contact the vault for nothing.
var ErrNothingToDo = errors.New("nothing to do: item export and index generation are both disabled")

// Encryption program names.
const (
	ProgramOpenSSL = "openssl"
	ProgramGPG     = "gpg"
)

// DefaultIndexFile is the index filename unless overridden.
const DefaultIndexFile = "index.txt"

// Encryption is the artifact encryption policy for one run.
type Encryption struct {
	Enabled bool

	// Program selects the engine: openssl (AES-CBC + PBKDF2) or gpg
	// (OpenPGP symmetric).
	Program string

	// Cipher names the cipher in the selected program's vocabulary
	// (aes-256-cbc for openssl, aes256 for gpg).
	Cipher string

	// KDF applies to the openssl engine only.
	KDF        string
	Iterations int

	// Suffix is appended to encrypted artifact names after any
	// content-derived extension.
	Suffix string

	// Passphrase sources, checked in order: file, OS keyring, the
	// LPASS_EXPORT_PASSPHRASE environment variable, interactive prompt.
	PassphraseFile string
	KeyringAccount string
	Prompt         bool
}

// Validate checks the encryption policy without touching the passphrase
// source; source readability is verified once at startup by cmd.
func (e Encryption) Validate() error {
	if !e.Enabled {
		return nil
	}
	return validation.ValidateStruct(&e,
		validation.Field(&e.Program, validation.Required, validation.In(ProgramOpenSSL, ProgramGPG)),
		validation.Field(&e.Cipher, validation.Required),
		validation.Field(&e.KDF,
			validation.When(e.Program == ProgramOpenSSL, validation.Required, validation.In("pbkdf2"))),
		validation.Field(&e.Iterations, validation.Min(0)),
		validation.Field(&e.Suffix, validation.Required),
	)
}

// HasSource reports whether any passphrase source is configured. The
// environment variable counts so scripted runs need no flag.
func (e Encryption) HasSource() bool {
	return e.PassphraseFile != "" || e.KeyringAccount != "" || e.Prompt ||
		os.Getenv(crypto.PassphraseEnvVar) != ""
}

// Run is the full configuration of one export invocation. Constructed
// once, never mutated.
type Run struct {
	OutputDir string
	Overwrite bool

	Format      lpass.Format
	ExportItems bool

	BuildIndex bool
	IndexFile  string

	Encryption Encryption

	ArchiveFile string

	Jobs int

	Username     string
	StayLoggedIn bool

	Quiet bool
	Debug bool
	Color report.ColorMode
}

// Default returns a Run with the historical defaults: plain-text items,
// sequential export, no index, no encryption, no archive.
func Default() Run {
	return Run{
		Format:      lpass.FormatPlain,
		ExportItems: true,
		IndexFile:   DefaultIndexFile,
		Encryption: Encryption{
			Program:    ProgramOpenSSL,
			Cipher:     "aes-256-cbc",
			KDF:        "pbkdf2",
			Iterations: crypto.DefaultIterations,
			Suffix:     crypto.DefaultSuffix,
		},
		Jobs:  1,
		Color: report.ColorAuto,
	}
}

// Normalize resolves the output directory to an absolute path.
func (r Run) Normalize() (Run, error) {
	abs, err := filepath.Abs(r.OutputDir)
	if err != nil {
		return r, fmt.Errorf("resolve output dir: %w", err)
	}
	r.OutputDir = abs
	return r, nil
}

// Validate is the fail-fast gate run before any vault contact.
func (r Run) Validate() error {
	if !r.ExportItems && !r.BuildIndex {
		return ErrNothingToDo
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.OutputDir, validation.Required, validation.By(existingDir)),
		validation.Field(&r.Format, validation.In(lpass.FormatPlain, lpass.FormatJSON)),
		validation.Field(&r.IndexFile, validation.Required.When(r.BuildIndex)),
		validation.Field(&r.Jobs, validation.Required, validation.Min(1)),
		validation.Field(&r.Color,
			validation.In(report.ColorAuto, report.ColorAlways, report.ColorNever)),
		validation.Field(&r.Encryption),
	)
}

func existingDir(value any) error {
	dir, _ := value.(string)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", dir)
	}
	return nil
}
