package export

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ErinsMatthew/lastpass-export/internal/config"
	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/lpass"
	"github.com/ErinsMatthew/lastpass-export/internal/report"
	"github.com/ErinsMatthew/lastpass-export/internal/storage"
)

// Orchestrator runs the whole export: login, enumerate, index, export
// items, archive, logout.
type Orchestrator struct {
	Vault  lpass.Client
	Store  *storage.Store
	Engine crypto.Engine
	Cfg    config.Run
	Log    *report.Printer

	// Archive packages the output directory when an archive file is
	// configured. Injected so tests can observe or stub it.
	Archive func(dst, srcDir string) error
}

// Run executes the pipeline. The returned Summary is valid even when an
// error is returned; the error covers fatal stages only (login,
// enumeration, archiving). Logout is attempted on every path after a
// successful login unless stay-logged-in is set.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	if err := o.Vault.Login(ctx, o.Cfg.Username); err != nil {
		return sum, err
	}
	defer func() {
		if o.Cfg.StayLoggedIn {
			return
		}
		if err := o.Vault.Logout(context.WithoutCancel(ctx)); err != nil {
			o.Log.Warnf("logout: %v", err)
		}
	}()

	enumerated, err := o.Vault.List(ctx)
	if err != nil {
		return sum, fmt.Errorf("list items: %w", err)
	}

	// Folder placeholders are enumeration artifacts, not items.
	items := make([]lpass.Item, 0, len(enumerated))
	for _, item := range enumerated {
		if item.IsGroup() {
			o.Log.Debugf("skipping folder entry %s (%s)", item.ID, item.FullName)
			continue
		}
		items = append(items, item)
	}

	if o.Cfg.BuildIndex {
		builder := &IndexBuilder{
			Store:     o.Store,
			Engine:    o.Engine,
			Overwrite: o.Cfg.Overwrite,
			FileName:  o.Cfg.IndexFile,
			Log:       o.Log,
		}
		outcome, err := builder.Build(items)
		switch {
		case err != nil:
			o.Log.Warnf("index: %v", err)
			sum.Failed.Add(1)
		case outcome == Skipped:
			sum.Skipped.Add(1)
		default:
			o.Log.Infof("wrote index %s", o.Cfg.IndexFile)
		}
	}

	if o.Cfg.ExportItems && len(items) > 0 {
		o.exportItems(ctx, items, sum)
	}

	if o.Cfg.ArchiveFile != "" {
		o.Log.Infof("archiving %s", o.Store.Root())
		if err := o.Archive(o.Cfg.ArchiveFile, o.Store.Root()); err != nil {
			return sum, fmt.Errorf("archive: %w", err)
		}
	}

	return sum, nil
}

// exportItems fans items out over a bounded worker pool. Jobs=1 keeps
// the historical strictly sequential order. Per-item failures are
// counted, never fatal; the remaining items always get their turn.
func (o *Orchestrator) exportItems(ctx context.Context, items []lpass.Item, sum *Summary) {
	exporter := &ItemExporter{
		Vault:   o.Vault,
		Store:   o.Store,
		Engine:  o.Engine,
		Format:  o.Cfg.Format,
		Log:     o.Log,
		Summary: sum,
		Attachments: &AttachmentExporter{
			Vault:     o.Vault,
			Store:     o.Store,
			Engine:    o.Engine,
			Overwrite: o.Cfg.Overwrite,
			Log:       o.Log,
		},
	}

	total := len(items)
	var done atomic.Int64

	var g errgroup.Group
	g.SetLimit(o.Cfg.Jobs)
	for _, item := range items {
		item := item
		g.Go(func() error {
			sum.Record(o.exportOne(ctx, exporter, item), &sum.Items)
			o.Log.Progress(int(done.Add(1)), total, item.FullName)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
}

func (o *Orchestrator) exportOne(ctx context.Context, exporter *ItemExporter, item lpass.Item) Outcome {
	path, err := exporter.MetadataPath(item.ID)
	if err != nil {
		o.Log.Warnf("item %s: %v", item.ID, err)
		return Failed
	}

	// Idempotence gate: an existing non-empty metadata file skips the
	// whole item, attachments included. A prior partial run with a stale
	// metadata file therefore keeps missing attachments missing until
	// overwrite is forced.
	if !o.Cfg.Overwrite && o.Store.Exported(path) {
		o.Log.Debugf("item %s already exported", item.ID)
		return Skipped
	}

	if err := exporter.Export(ctx, item, path); err != nil {
		o.Log.Warnf("%v", err)
		return Failed
	}
	return Written
}
