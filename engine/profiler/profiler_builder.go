package profiler

import (
	"time"

	"go.uber.org/zap"
)

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger stats are written to.
//
// Parameters:
//   - logger: a zap logger; nil keeps the no-op logger
//
// Returns:
//   - ProfilerOption: functional option to set the logger
func WithLogger(logger *zap.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often stats are reported.
//
// Parameters:
//   - interval: reporting period
//
// Returns:
//   - ProfilerOption: functional option to set the interval
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces the time source.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ProfilerOption: functional option to set the clock
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}
