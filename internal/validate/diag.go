package validate

import (
	"log/slog"
	"time"
)

// Diagnostic is one rejected-row explanation, tagged with the source line it
// concerns.
type Diagnostic struct {
	Time    time.Time
	Dataset string
	Line    int
	Message string
}

// Recorder collects diagnostics for a single validation run and mirrors each
// entry to the structured log. It is passed explicitly into every validation
// stage instead of stages writing to a process-wide logger, so callers and
// tests can inspect exactly what a run rejected.
//
// The pipeline is a single-threaded batch process with one writer, so the
// Recorder does no locking.
type Recorder struct {
	logger  *slog.Logger
	entries []Diagnostic
	now     func() time.Time
}

// NewRecorder creates a Recorder that mirrors entries to logger.
// A nil logger discards the mirrored entries.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{logger: logger, now: time.Now}
}

// RowError records a diagnostic for one rejected row.
func (r *Recorder) RowError(dataset string, line int, message string) {
	d := Diagnostic{
		Time:    r.now().UTC(),
		Dataset: dataset,
		Line:    line,
		Message: message,
	}
	r.entries = append(r.entries, d)
	r.logger.Error("row rejected",
		"dataset", dataset,
		"line", line,
		"reason", message,
	)
}

// Entries returns every diagnostic recorded so far, in emission order.
func (r *Recorder) Entries() []Diagnostic {
	out := make([]Diagnostic, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of recorded diagnostics.
func (r *Recorder) Len() int {
	return len(r.entries)
}
