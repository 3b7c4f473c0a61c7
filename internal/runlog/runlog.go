// Package runlog carries a per-run structured logger that also collects
// normalization warnings into the run report. Parse failures inside the
// pipeline are recovered locally; this is where they surface.
package runlog

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Warning one recovered-locally event: a value that had to be defaulted.
type Warning struct {
	Stage   string `json:"stage"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Log run-scoped logger plus warning collector. Safe for use from
// row-parallel mapping.
type Log struct {
	logger zerolog.Logger

	mu       sync.Mutex
	warnings []Warning
}

// New creates a run log writing structured events to w.
func New(w io.Writer) *Log {
	if w == nil {
		w = io.Discard
	}
	return &Log{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// FromLogger creates a run log on an existing logger.
func FromLogger(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

// Discard creates a run log that only collects warnings.
func Discard() *Log {
	return New(io.Discard)
}

// Warnf records a defaulted value: one structured event plus one collected
// warning for the run report.
func (l *Log) Warnf(stage, field, value, message string) {
	l.logger.Warn().
		Str("stage", stage).
		Str("field", field).
		Str("value", value).
		Msg(message)

	l.mu.Lock()
	l.warnings = append(l.warnings, Warning{
		Stage:   stage,
		Field:   field,
		Value:   value,
		Message: message,
	})
	l.mu.Unlock()
}

// Infof records a pipeline-level event without collecting it.
func (l *Log) Infof(stage, message string) {
	l.logger.Info().Str("stage", stage).Msg(message)
}

// Warnings returns a copy of everything collected so far.
func (l *Log) Warnings() []Warning {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Warning, len(l.warnings))
	copy(out, l.warnings)
	return out
}
