package export

import (
	"context"

	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/lpass"
	"github.com/ErinsMatthew/lastpass-export/internal/report"
	"github.com/ErinsMatthew/lastpass-export/internal/security"
	"github.com/ErinsMatthew/lastpass-export/internal/sniff"
	"github.com/ErinsMatthew/lastpass-export/internal/storage"
)

// AttachmentExporter writes one attachment file per descriptor into the
// item's attachment directory.
type AttachmentExporter struct {
	Vault     lpass.Client
	Store     *storage.Store
	Engine    crypto.Engine
	Overwrite bool
	Log       *report.Printer
}

// Export resolves the attachment's output name and writes its bytes
// through the encryption engine into dir. The directory must already
// exist.
//
// A declared filename is trusted as-is and never sniffed. An attachment
// without one is named after its id, and its true extension is inferred
// from the content; the bytes are fetched once and reused for the write
// (no second fetch).
//
// Skip-if-exists applies here the same as for item files: an existing
// non-empty artifact is left untouched unless overwrite is on.
func (a *AttachmentExporter) Export(ctx context.Context, itemID, descriptor, dir string) Outcome {
	attID, declared := lpass.ParseDescriptor(descriptor)
	if attID == "" {
		a.Log.Warnf("item %s: malformed attachment descriptor %q", itemID, descriptor)
		return Skipped
	}

	base := declared
	var data []byte
	var ext string

	if base == "" {
		base = attID

		fetched, err := a.Vault.Attachment(ctx, itemID, attID)
		if err != nil {
			a.Log.Warnf("item %s: fetch attachment %s: %v", itemID, attID, err)
			return Failed
		}
		data = fetched

		var mimeType string
		mimeType, ext = sniff.Detect(data)
		a.Log.Debugf("item %s: attachment %s sniffed as %s", itemID, attID, mimeType)
	}

	path, err := security.Join(dir, artifactName(base, ext, a.Engine))
	if err != nil {
		a.Log.Warnf("item %s: attachment %s: %v", itemID, attID, err)
		return Failed
	}

	if !a.Overwrite && a.Store.Exported(path) {
		a.Log.Debugf("item %s: attachment %s already exported", itemID, attID)
		return Skipped
	}

	if data == nil {
		data, err = a.Vault.Attachment(ctx, itemID, attID)
		if err != nil {
			a.Log.Warnf("item %s: fetch attachment %s: %v", itemID, attID, err)
			return Failed
		}
	}

	if err := writeArtifact(a.Store, a.Engine, path, data); err != nil {
		a.Log.Warnf("item %s: attachment %s: %v", itemID, attID, err)
		return Failed
	}
	return Written
}
