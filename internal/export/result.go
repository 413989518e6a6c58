package export

import "sync/atomic"

// Outcome classifies what happened to one artifact.
type Outcome int

const (
	// Written means the artifact was exported in this run.
	Written Outcome = iota

	// Skipped means the artifact already existed with non-zero size and
	// overwrite was not requested.
	Skipped

	// Failed means fetching or writing the artifact failed. Recoverable:
	// the run continues.
	Failed
)

// Summary aggregates per-run counters. Counters are atomic because item
// workers may run concurrently; the final numbers must be exact.
type Summary struct {
	Items       atomic.Int64 // item metadata files written
	Attachments atomic.Int64 // attachment files written
	Skipped     atomic.Int64 // artifacts skipped by the existence gate
	Failed      atomic.Int64 // artifacts that could not be exported
}

// Record bumps the counter matching o. The written counter is chosen by
// the caller since items and attachments are tracked separately.
func (s *Summary) Record(o Outcome, written *atomic.Int64) {
	switch o {
	case Written:
		written.Add(1)
	case Skipped:
		s.Skipped.Add(1)
	case Failed:
		s.Failed.Add(1)
	}
}
