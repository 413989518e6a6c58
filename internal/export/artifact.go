package export

import (
	"bytes"

	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/storage"
)

// artifactName composes an output filename. Composition order is fixed:
// base name, then the content-derived extension, then the encryption
// suffix (statement.pdf.enc, never statement.enc.pdf).
func artifactName(base, ext string, engine crypto.Engine) string {
	name := base
	if ext != "" {
		name += "." + ext
	}
	if engine.Enabled() {
		name += "." + engine.Suffix()
	}
	return name
}

// writeArtifact runs data through the encryption engine and persists the
// result atomically.
func writeArtifact(store *storage.Store, engine crypto.Engine, path string, data []byte) error {
	var buf bytes.Buffer
	if err := crypto.Seal(engine, data, &buf); err != nil {
		return err
	}
	return store.Write(path, buf.Bytes())
}
