package export

import (
	"fmt"
	"strings"

	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/lpass"
	"github.com/ErinsMatthew/lastpass-export/internal/report"
	"github.com/ErinsMatthew/lastpass-export/internal/security"
	"github.com/ErinsMatthew/lastpass-export/internal/storage"
)

// IndexBuilder writes the flat item manifest: one "id|name|fullname"
// line per item, in vault enumeration order. Enumeration order is not
// stable across vault service runs; the index reflects whatever order
// the vault returned for this run.
type IndexBuilder struct {
	Store     *storage.Store
	Engine    crypto.Engine
	Overwrite bool
	FileName  string
	Log       *report.Printer
}

// Build renders and writes the index file, encrypted as a single
// envelope when encryption is on. Subject to the same skip-if-exists
// gate as item files. An empty item list produces an empty index file.
func (b *IndexBuilder) Build(items []lpass.Item) (Outcome, error) {
	path, err := security.Join(b.Store.Root(), artifactName(b.FileName, "", b.Engine))
	if err != nil {
		return Failed, err
	}

	if !b.Overwrite && b.Store.Exported(path) {
		b.Log.Debugf("index %s already exported", path)
		return Skipped, nil
	}

	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "%s|%s|%s\n", item.ID, item.Name, item.FullName)
	}

	if err := writeArtifact(b.Store, b.Engine, path, []byte(sb.String())); err != nil {
		return Failed, err
	}
	return Written, nil
}
