package input_poller

import "go.uber.org/zap"

// PollerBuilderOption is a functional option for configuring a Poller.
type PollerBuilderOption func(*pollerImpl)

// WithLogger sets the logger used for input diagnostics.
//
// Parameters:
//   - logger: a zap logger; nil keeps the no-op logger
//
// Returns:
//   - PollerBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) PollerBuilderOption {
	return func(p *pollerImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}
