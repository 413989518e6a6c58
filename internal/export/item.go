package export

import (
	"context"
	"fmt"

	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/lpass"
	"github.com/ErinsMatthew/lastpass-export/internal/report"
	"github.com/ErinsMatthew/lastpass-export/internal/security"
	"github.com/ErinsMatthew/lastpass-export/internal/storage"
)

// ItemExporter writes one item's metadata file and drives the
// AttachmentExporter for every attachment the item owns.
type ItemExporter struct {
	Vault       lpass.Client
	Store       *storage.Store
	Engine      crypto.Engine
	Format      lpass.Format
	Log         *report.Printer
	Attachments *AttachmentExporter
	Summary     *Summary
}

// MetadataPath returns the artifact path for an item's metadata file:
// {out}/{id}.{txt|json}[.{suffix}].
func (e *ItemExporter) MetadataPath(id string) (string, error) {
	return security.Join(e.Store.Root(), artifactName(id, e.Format.Ext(), e.Engine))
}

// Export fetches the item's metadata, writes it to path, and exports
// the item's attachments best-effort. The skip-if-exists gate is the
// caller's job; when the caller skips, neither metadata nor attachments
// are touched.
//
// The returned error covers the metadata write only. Attachment failures
// are logged and counted; a partially exported item is expected, not an
// error.
func (e *ItemExporter) Export(ctx context.Context, item lpass.Item, path string) error {
	detail, err := e.Vault.ItemDetail(ctx, item.ID, e.Format)
	if err != nil {
		return fmt.Errorf("fetch item %s: %w", item.ID, err)
	}
	if err := writeArtifact(e.Store, e.Engine, path, detail); err != nil {
		return fmt.Errorf("item %s: %w", item.ID, err)
	}

	e.exportAttachments(ctx, item)
	return nil
}

func (e *ItemExporter) exportAttachments(ctx context.Context, item lpass.Item) {
	descriptors, err := e.Vault.AttachmentList(ctx, item.ID)
	if err != nil {
		e.Log.Warnf("item %s: list attachments: %v", item.ID, err)
		e.Summary.Failed.Add(1)
		return
	}
	if len(descriptors) == 0 {
		return
	}

	dir, err := security.Join(e.Store.Root(), item.ID)
	if err != nil {
		e.Log.Warnf("item %s: %v", item.ID, err)
		e.Summary.Failed.Add(int64(len(descriptors)))
		return
	}
	if err := e.Store.EnsureDir(dir); err != nil {
		e.Log.Warnf("item %s: %v", item.ID, err)
		e.Summary.Failed.Add(int64(len(descriptors)))
		return
	}

	// Attachments within an item stay sequential; only items fan out.
	for _, descriptor := range descriptors {
		outcome := e.Attachments.Export(ctx, item.ID, descriptor, dir)
		e.Summary.Record(outcome, &e.Summary.Attachments)
	}
}
