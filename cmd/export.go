// Package cmd wires the run configuration to the export pipeline.
package cmd

import (
	"context"
	"os"

	"github.com/ErinsMatthew/lastpass-export/internal/archive"
	"github.com/ErinsMatthew/lastpass-export/internal/config"
	"github.com/ErinsMatthew/lastpass-export/internal/export"
	"github.com/ErinsMatthew/lastpass-export/internal/lpass"
	"github.com/ErinsMatthew/lastpass-export/internal/report"
	"github.com/ErinsMatthew/lastpass-export/internal/storage"
)

// Exit codes. Setup failures (bad config, missing lpass, unreadable
// passphrase) exit before any vault contact.
const (
	ExitOK    = 0
	ExitError = 1
	ExitSetup = 2
)

// Export runs one export invocation and returns the process exit code.
func Export(ctx context.Context, cfg config.Run) int {
	log := report.New(os.Stdout, os.Stderr, cfg.Color, cfg.Quiet, cfg.Debug)

	cfg, err := cfg.Normalize()
	if err != nil {
		log.Errorf("%v", err)
		return ExitSetup
	}
	if err := cfg.Validate(); err != nil {
		log.Errorf("%v", err)
		return ExitSetup
	}
	if err := lpass.CheckInstalled(); err != nil {
		log.Errorf("%v", err)
		return ExitSetup
	}

	engine, err := buildEngine(cfg.Encryption)
	if err != nil {
		log.Errorf("%v", err)
		return ExitSetup
	}

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		log.Errorf("%v", err)
		return ExitSetup
	}

	orchestrator := &export.Orchestrator{
		Vault:   &lpass.CLI{Debugf: log.Debugf},
		Store:   store,
		Engine:  engine,
		Cfg:     cfg,
		Log:     log,
		Archive: archive.Create,
	}

	summary, err := orchestrator.Run(ctx)
	if err != nil {
		log.Errorf("%v", err)
		return ExitError
	}

	items := summary.Items.Load()
	attachments := summary.Attachments.Load()
	skipped := summary.Skipped.Load()
	failed := summary.Failed.Load()

	log.Successf("exported %d items and %d attachments (%d skipped, %d failed)",
		items, attachments, skipped, failed)

	if failed > 0 {
		return ExitError
	}
	return ExitOK
}
