// Package export drives the vault export pipeline: enumerate items,
// build the optional index, write each item's metadata and attachments
// through the configured encryption engine, and aggregate per-run
// progress and failure counts.
//
// The pipeline is resilient by design: one bad item or attachment is
// logged and counted, never fatal. Fatal errors are limited to setup
// (configuration, missing lpass binary, login).
package export
