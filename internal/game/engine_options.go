package game

import "github.com/charmbracelet/log"

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

type engineConfig struct {
	tableLimit       float64
	hasTableLimit    bool
	stopOnBankruptcy bool
	logger           *log.Logger
}

// WithTableLimit caps every stake at limit.
func WithTableLimit(limit float64) EngineOption {
	return func(c *engineConfig) {
		c.tableLimit = limit
		c.hasTableLimit = true
	}
}

// WithOptionalTableLimit applies limit when it is non-nil, which suits
// configuration where absence means an unbounded table.
func WithOptionalTableLimit(limit *float64) EngineOption {
	return func(c *engineConfig) {
		if limit != nil {
			WithTableLimit(*limit)(c)
		}
	}
}

// WithStopOnBankruptcy makes RunSimulation stop once the bankroll is zero
// or below.
func WithStopOnBankruptcy(stop bool) EngineOption {
	return func(c *engineConfig) {
		c.stopOnBankruptcy = stop
	}
}

// WithLogger sets the logger used for per-round debug output.
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
