// Package lpass wraps the LastPass CLI (lpass) as the vault backend.
//
// All vault protocol interaction is delegated to the lpass binary:
//   - lpass login / logout for session management (one shared session
//     per run, never per item)
//   - lpass ls with a pipe-delimited format string for item enumeration
//   - lpass show for item metadata and attachment listings
//   - lpass show --attach for attachment bytes
//
// The Client interface exists so the export pipeline can be driven by a
// fake in tests; CLI is the exec-backed implementation.
package lpass
