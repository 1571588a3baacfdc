package envguard

import (
	"context"
	"log/slog"
)

// Scrub outcomes.
const (
	ScrubCleared = "cleared"
	ScrubExposed = "exposed"
)

// Table is the process environment as seen by the scrubber.
type Table interface {
	// Unsetenv removes name through the conventional API.
	Unsetenv(name string) error
	// RemoveRaw removes every entry for name from the raw exported table
	// and returns how many it removed.
	RemoveRaw(name string) int
	// Exposed reports whether name is still visible anywhere.
	Exposed(name string) bool
}

// Scrubber removes protected names from a Table.
type Scrubber struct {
	table    Table
	logger   *slog.Logger
	recorder Recorder
}

// NewScrubber creates a scrubber over table.
func NewScrubber(table Table, logger *slog.Logger, recorder Recorder) *Scrubber {
	return &Scrubber{table: table, logger: logger, recorder: recorder}
}

// Scrub removes name from the table and verifies the result. It is
// idempotent and safe for names that are not present. Callers hold the
// engine lock.
func (s *Scrubber) Scrub(ctx context.Context, name string) string {
	if err := s.table.Unsetenv(name); err != nil {
		s.logger.WarnContext(ctx, "failed to unset protected name", "name", name, "error", err)
	}
	removed := s.table.RemoveRaw(name)

	outcome := ScrubCleared
	if s.table.Exposed(name) {
		outcome = ScrubExposed
		s.logger.WarnContext(ctx, "protected name still exposed after scrub", "name", name)
	} else {
		s.logger.DebugContext(ctx, "protected name cleared from environment",
			"name", name,
			"raw_removed", removed,
		)
	}

	s.recorder.RecordScrub(outcome)
	return outcome
}

// Exposed reports whether name is visible in the table.
func (s *Scrubber) Exposed(name string) bool {
	return s.table.Exposed(name)
}
