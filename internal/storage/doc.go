// Package storage manages the export output directory.
//
// All exported artifacts (item metadata files, attachment files, the index)
// go through this package. It provides:
//   - the skip-if-exists gate: an artifact counts as already exported iff
//     it exists with non-zero size
//   - idempotent, race-safe directory creation for per-item attachment dirs
//   - atomic artifact writes (temp file + rename), so a partially written
//     file never satisfies the existence gate on a later run
package storage
